package diagnostic

import (
	"fmt"
	"strings"

	"nnx1/internal/model"
)

// categoryMatch is a category hit by at least one answer, with the
// de-duplicated descriptions contributed by its answers.
type categoryMatch struct {
	category     *Category
	descriptions []string
}

func (m categoryMatch) joined() string {
	return strings.Join(m.descriptions, ", ")
}

func (m categoryMatch) tools(n int) []string {
	s := m.category.ToolSuggestions
	if n > len(s) {
		n = len(s)
	}
	out := make([]string, n)
	copy(out, s[:n])
	return out
}

// matchCategories groups answers into categories, returned in category
// definition order rather than answer order.
func matchCategories(tax *Taxonomy, answers []model.Answer, strengths bool) []categoryMatch {
	byName := make(map[string]*categoryMatch)
	for _, a := range answers {
		c, ok := tax.Categorize(a.QuestionText)
		if !ok {
			continue
		}
		desc := c.Improvement
		if strengths {
			desc = c.Strength
		}
		m, seen := byName[c.Name]
		if !seen {
			m = &categoryMatch{category: c}
			byName[c.Name] = m
		}
		if !contains(m.descriptions, desc) {
			m.descriptions = append(m.descriptions, desc)
		}
	}

	out := make([]categoryMatch, 0, len(byName))
	for i := range tax.Categories {
		if m, ok := byName[tax.Categories[i].Name]; ok {
			out = append(out, *m)
		}
	}
	return out
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// ClassifyInsights selects exactly three templated insights for the answers.
func ClassifyInsights(answers []model.Answer, tool model.ToolID) []model.Insight {
	tax, _ := TaxonomyFor(tool)

	var yes, no []model.Answer
	for _, a := range answers {
		if a.IsYes() {
			yes = append(yes, a)
		} else {
			no = append(no, a)
		}
	}
	strengths := matchCategories(tax, yes, true)
	improvements := matchCategories(tax, no, false)

	switch {
	case len(strengths) == 0 && len(improvements) > 0:
		return foundationInsights(improvements[0])
	case len(strengths) > 0 && len(improvements) == 0:
		return exceptionalInsights(strengths[0])
	case len(strengths) > 0 && len(improvements) > 0:
		primary := strengths[0]
		improve := improvements[0]
		for _, m := range improvements {
			if m.category.Name != primary.category.Name {
				improve = m
				break
			}
		}
		return mixedInsights(primary, improve)
	default:
		return genericInsights(&taxonomies[DefaultTool].Categories[0])
	}
}

func foundationInsights(m categoryMatch) []model.Insight {
	name := m.category.Name
	return []model.Insight{
		{
			Title:       "Foundation Building Opportunity",
			Description: "You're at the perfect starting point for systematic business improvement. Every successful business began with this exact foundation.",
			DetailedDescription: fmt.Sprintf("This is an opportunity to build robust systems from the ground up. Your assessment shows you need to focus on %s:\n\n• %s\n\n"+
				"Start with one area this week - choose the simplest change that will have the biggest immediate impact. Begin by creating basic systems and processes.", name, m.joined()),
			ToolSuggestions:   m.tools(3),
			RealWorldScenario: "Many successful businesses started exactly where you are. The key is to implement changes systematically, one area at a time, building momentum as you go.",
		},
		{
			Title:       "Systematic Improvement Strategy",
			Description: fmt.Sprintf("Focus on implementing systematic changes in %s. This area presents the highest potential for immediate impact.", name),
			DetailedDescription: fmt.Sprintf("Your assessment reveals that %s is your top priority:\n\n• %s\n\n"+
				"This area represents an opportunity to enhance operational efficiency and overall business performance. Focus on this area to provide the highest return on investment.", name, m.joined()),
			ToolSuggestions:   m.tools(3),
			RealWorldScenario: fmt.Sprintf("Businesses that systematically address %s often see measurable improvements in efficiency and profitability within 3-6 months of implementation.", name),
		},
		{
			Title:       "Strategic Action Plan",
			Description: fmt.Sprintf("Focus on building your foundation in %s. Start with the simplest changes that will have the biggest immediate impact.", name),
			DetailedDescription: fmt.Sprintf("Your action plan is clear:\n\n• Priority Area: %s\n• Immediate Action: Start with basic systems\n• Timeline: Begin this week\n\n"+
				"This approach will maximize your return on effort and create sustainable competitive advantages. Focus on %s initially to build momentum and demonstrate quick wins.", name, name),
			ToolSuggestions:   m.tools(2),
			RealWorldScenario: fmt.Sprintf("Businesses with your profile often achieve the best results by focusing improvement efforts on %s while building a strong foundation.", name),
		},
	}
}

func exceptionalInsights(m categoryMatch) []model.Insight {
	name := m.category.Name
	return []model.Insight{
		{
			Title:       "Exceptional Business Operations",
			Description: "Your business demonstrates mastery across all critical areas. You're operating at an advanced level with robust systems in place.",
			DetailedDescription: fmt.Sprintf("Your comprehensive approach to business management is exemplary. You've successfully implemented systems across all major operational areas, particularly in %s:\n\n• %s\n\n"+
				"This positions your business for sustainable growth and market leadership. Consider exploring advanced optimization strategies and scaling opportunities.", name, m.joined()),
			ToolSuggestions:   m.tools(2),
			RealWorldScenario: "A business like yours might focus on advanced analytics, automation, and strategic partnerships to further optimize operations and explore new market opportunities.",
		},
		{
			Title:       "Advanced Optimization Strategy",
			Description: "Your strong foundation positions you for advanced optimization and scaling opportunities.",
			DetailedDescription: fmt.Sprintf("With excellence across all areas, particularly in %s, you're ready for advanced optimization strategies. "+
				"Consider exploring automation, advanced analytics, and strategic partnerships to further enhance your competitive position and explore new market opportunities.", name),
			ToolSuggestions:   m.tools(2),
			RealWorldScenario: "Businesses at your level often focus on advanced analytics, automation, and strategic partnerships to further optimize operations and explore new market opportunities.",
		},
		{
			Title:       "Strategic Growth Plan",
			Description: fmt.Sprintf("Leverage your strength in %s to explore new opportunities and scale your operations.", name),
			DetailedDescription: fmt.Sprintf("Your balanced profile provides clear strategic direction:\n\n• Build on Strength: Continue excelling in %s\n• Explore Opportunities: Consider new markets or services\n• Scale Operations: Implement advanced systems\n\n"+
				"This approach will maximize your competitive advantage and create sustainable growth opportunities.", name),
			ToolSuggestions:   m.tools(2),
			RealWorldScenario: fmt.Sprintf("Businesses with your profile often achieve the best results by leveraging their strength in %s while exploring new market opportunities.", name),
		},
	}
}

func mixedInsights(strength, improve categoryMatch) []model.Insight {
	s, i := strength.category.Name, improve.category.Name
	return []model.Insight{
		{
			Title:       "Your Primary Business Strength",
			Description: fmt.Sprintf("You excel in %s. This is your strongest area and provides a solid foundation for growth.", s),
			DetailedDescription: fmt.Sprintf("Your business demonstrates strong performance in %s:\n\n• %s\n\n"+
				"This strength gives you a competitive advantage and provides excellent leverage for strategic improvements. Focus on maintaining this strength while building upon it to create sustainable growth opportunities.", s, strength.joined()),
			ToolSuggestions:   strength.tools(2),
			RealWorldScenario: fmt.Sprintf("Businesses with strengths in %s often see significant ROI by leveraging this area as a competitive advantage while systematically improving other operational aspects.", s),
		},
		{
			Title:       "Your Key Improvement Opportunity",
			Description: fmt.Sprintf("You have a clear opportunity to improve in %s. This area presents the highest potential for strategic enhancement.", i),
			DetailedDescription: fmt.Sprintf("Your assessment reveals a key area with significant improvement potential:\n\n• %s: %s\n\n"+
				"This area represents an opportunity to enhance operational efficiency, customer satisfaction, and overall business performance. Focus on this area to provide the highest return on investment while maintaining your existing strengths.", i, improve.joined()),
			ToolSuggestions:   improve.tools(3),
			RealWorldScenario: fmt.Sprintf("Businesses that systematically address %s often see measurable improvements in efficiency, customer satisfaction, and profitability within 3-6 months of implementation.", i),
		},
		{
			Title:       "Strategic Action Plan",
			Description: fmt.Sprintf("Leverage your strength in %s while systematically improving %s.", s, i),
			DetailedDescription: fmt.Sprintf("Your balanced profile provides clear strategic direction:\n\n• Build on Strength: Continue excelling in %s\n• Address Improvement: Focus on %s\n• Prioritize Actions: Start with %s this week\n\n"+
				"This approach will maximize your return on effort and create sustainable competitive advantages. Focus on %s initially to build momentum and demonstrate quick wins.", s, i, i, i),
			ToolSuggestions:   improve.tools(2),
			RealWorldScenario: fmt.Sprintf("Businesses with your profile often achieve the best results by focusing improvement efforts on %s while maintaining their strong foundation in %s.", i, s),
		},
	}
}

func genericInsights(filler *Category) []model.Insight {
	m := categoryMatch{category: filler}
	return []model.Insight{
		{
			Title:               "Business Assessment Complete",
			Description:         "Your diagnostic assessment provides valuable insights into your business operations.",
			DetailedDescription: "Your assessment results show a unique business profile. Consider reviewing your answers and retaking the assessment if needed to get more specific insights about your business strengths and improvement opportunities.",
			ToolSuggestions:     m.tools(2),
			RealWorldScenario:   "Every business is unique. Take time to reflect on your assessment answers and consider how they align with your business goals and challenges.",
		},
		{
			Title:       "Next Steps",
			Description: "Consider retaking the assessment or exploring our other diagnostic tools for more specific insights.",
			DetailedDescription: "To get more targeted insights, consider:\n\n• Retaking this assessment with different answers\n• Trying our other diagnostic tools\n• Consulting with a business advisor\n\n" +
				"This will help you get more specific guidance for your business needs.",
			RealWorldScenario: "Many businesses benefit from multiple assessments to get a comprehensive view of their operations and opportunities.",
		},
		{
			Title:       "Business Growth Strategy",
			Description: "Focus on systematic improvement and continuous learning to drive business growth.",
			DetailedDescription: "Regardless of your current assessment results, successful businesses focus on:\n\n• Continuous improvement\n• Systematic processes\n• Regular assessment and adjustment\n\n" +
				"Commit to ongoing improvement and regular evaluation of your business systems.",
			ToolSuggestions:   m.tools(2),
			RealWorldScenario: "The most successful businesses are those that commit to continuous improvement and regular assessment of their operations.",
		},
	}
}
