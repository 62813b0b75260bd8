package diagnostic_test

import (
	"testing"

	"nnx1/internal/diagnostic"
	"nnx1/internal/model"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClassifyInsights(t *testing.T) {
	Convey("Given an all-No Data Hygiene answer set", t, func() {
		insights := diagnostic.ClassifyInsights(answersFor(model.ToolDataHygiene, "NNNNNNNNNN"), model.ToolDataHygiene)

		Convey("Then the foundation scenario is keyed off the first improvement category", func() {
			So(insights, ShouldHaveLength, 3)
			So(insights[0].Title, ShouldEqual, "Foundation Building Opportunity")
			So(insights[1].Title, ShouldEqual, "Systematic Improvement Strategy")
			So(insights[2].Title, ShouldEqual, "Strategic Action Plan")
			for _, in := range insights {
				So(in.DetailedDescription, ShouldContainSubstring, "Data Centralization")
			}
			So(insights[0].DetailedDescription, ShouldContainSubstring, "• You need centralized data management\n")
		})

		Convey("Then tool suggestions are sliced 3, 3, 2", func() {
			So(insights[0].ToolSuggestions, ShouldResemble, []string{
				"Centralized data management platforms",
				"Flexible business data organization tools",
				"Comprehensive business documentation systems",
			})
			So(insights[1].ToolSuggestions, ShouldHaveLength, 3)
			So(insights[2].ToolSuggestions, ShouldHaveLength, 2)
		})
	})

	Convey("Given an all-Yes Cash Flow answer set", t, func() {
		insights := diagnostic.ClassifyInsights(answersFor(model.ToolCashFlow, "YYYYYYYYYY"), model.ToolCashFlow)

		Convey("Then the exceptional scenario is keyed off the first strength category", func() {
			So(insights, ShouldHaveLength, 3)
			So(insights[0].Title, ShouldEqual, "Exceptional Business Operations")
			So(insights[0].DetailedDescription, ShouldContainSubstring, "particularly in Profit Tracking")
			So(insights[1].Title, ShouldEqual, "Advanced Optimization Strategy")
			So(insights[2].Description, ShouldContainSubstring, "Leverage your strength in Profit Tracking")
			for _, in := range insights {
				So(in.ToolSuggestions, ShouldHaveLength, 2)
			}
			So(insights[0].ToolSuggestions[0], ShouldEqual, "Comprehensive financial tracking platforms")
		})
	})

	Convey("Given a 5 Yes / 5 No Data Hygiene answer set", t, func() {
		insights := diagnostic.ClassifyInsights(answersFor(model.ToolDataHygiene, "YYYYYNNNNN"), model.ToolDataHygiene)

		Convey("Then the mixed scenario pairs a strength with a different improvement", func() {
			So(insights, ShouldHaveLength, 3)
			So(insights[0].Title, ShouldEqual, "Your Primary Business Strength")
			So(insights[0].Description, ShouldContainSubstring, "Data Centralization")
			So(insights[1].Title, ShouldEqual, "Your Key Improvement Opportunity")
			So(insights[1].Description, ShouldContainSubstring, "Data Quality")
			So(insights[1].DetailedDescription, ShouldContainSubstring, "• Data Quality: You need better data quality")
			So(insights[2].Description, ShouldEqual, "Leverage your strength in Data Centralization while systematically improving Data Quality.")
		})

		Convey("Then tool suggestions are sliced 2, 3, 2", func() {
			So(insights[0].ToolSuggestions, ShouldHaveLength, 2)
			So(insights[1].ToolSuggestions, ShouldHaveLength, 3)
			So(insights[1].ToolSuggestions[0], ShouldEqual, "Workflow management platforms")
			So(insights[2].ToolSuggestions, ShouldHaveLength, 2)
		})
	})

	Convey("Given improvements that only share the strength category", t, func() {
		answers := answersFor(model.ToolDataHygiene, "YN")

		Convey("Then the improvement falls back to the first improvement category", func() {
			insights := diagnostic.ClassifyInsights(answers, model.ToolDataHygiene)
			So(insights[0].Description, ShouldContainSubstring, "Data Centralization")
			So(insights[1].Description, ShouldContainSubstring, "Data Centralization")
		})
	})

	Convey("Given a strength category that also has improvements", t, func() {
		// DC yes, DC no, SI no: the improvement must skip DC.
		answers := answersFor(model.ToolDataHygiene, "YNN")

		Convey("Then the first improvement not equal to the strength is used", func() {
			insights := diagnostic.ClassifyInsights(answers, model.ToolDataHygiene)
			So(insights[1].Description, ShouldContainSubstring, "System Integration")
		})
	})

	Convey("Given answers that match no category", t, func() {
		answers := freeText("Do you enjoy pizza?", "Is the sky blue?")

		Convey("Then the generic scenario is used with default filler suggestions", func() {
			insights := diagnostic.ClassifyInsights(answers, model.ToolCashFlow)
			So(insights, ShouldHaveLength, 3)
			So(insights[0].Title, ShouldEqual, "Business Assessment Complete")
			So(insights[0].ToolSuggestions, ShouldResemble, []string{
				"Centralized data management platforms",
				"Flexible business data organization tools",
			})
			So(insights[1].ToolSuggestions, ShouldBeEmpty)
			So(insights[2].ToolSuggestions, ShouldHaveLength, 2)
		})
	})

	Convey("Given an unknown tool", t, func() {
		tool := model.ToolID("nonexistent-diagnostic")

		Convey("Then unmatched answers still yield three generic insights", func() {
			insights := diagnostic.ClassifyInsights(freeText("Do you enjoy pizza?"), tool)
			So(insights, ShouldHaveLength, 3)
			So(insights[0].Title, ShouldEqual, "Business Assessment Complete")
		})

		Convey("Then the default taxonomy is reported", func() {
			tax, usedDefault := diagnostic.TaxonomyFor(tool)
			So(usedDefault, ShouldBeTrue)
			So(tax.Tool, ShouldEqual, model.ToolDataHygiene)
		})

		Convey("Then matching answers are categorised with the default taxonomy", func() {
			answers := answersFor(model.ToolDataHygiene, "NNNNNNNNNN")
			insights := diagnostic.ClassifyInsights(answers, tool)
			So(insights[0].Title, ShouldEqual, "Foundation Building Opportunity")
		})
	})

	Convey("Given the same input twice", t, func() {
		answers := answersFor(model.ToolMarketing, "YNYNYNYNYN")

		Convey("Then the output is identical", func() {
			a := diagnostic.ClassifyInsights(answers, model.ToolMarketing)
			b := diagnostic.ClassifyInsights(answers, model.ToolMarketing)
			So(a, ShouldResemble, b)
		})
	})
}

func TestCategorize(t *testing.T) {
	Convey("Given the marketing taxonomy", t, func() {
		tax, usedDefault := diagnostic.TaxonomyFor(model.ToolMarketing)
		So(usedDefault, ShouldBeFalse)

		Convey("When a question matches both Customer Feedback and Brand Management", func() {
			c, ok := tax.Categorize("Do you know who your best customers are?")

			Convey("Then the earlier category wins", func() {
				So(ok, ShouldBeTrue)
				So(c.Name, ShouldEqual, "Customer Feedback")
			})
		})

		Convey("When matching is case-insensitive", func() {
			c, ok := tax.Categorize("IS YOUR BRAND CONSISTENT?")

			Convey("Then the keyword is found", func() {
				So(ok, ShouldBeTrue)
				So(c.Name, ShouldEqual, "Brand Management")
			})
		})
	})

	Convey("Given every tool's question bank", t, func() {
		Convey("Then every question falls into some category", func() {
			for _, tool := range model.ToolIDs() {
				tax, _ := diagnostic.TaxonomyFor(tool)
				for _, a := range answersFor(tool, "NNNNNNNNNN") {
					_, ok := tax.Categorize(a.QuestionText)
					So(ok, ShouldBeTrue)
				}
			}
		})
	})
}

func TestActionSteps(t *testing.T) {
	Convey("Given an all-No Cash Flow answer set", t, func() {
		answers := answersFor(model.ToolCashFlow, "NNNNNNNNNN")

		Convey("Then the limit caps the number of steps", func() {
			steps := diagnostic.ActionSteps(answers, model.ToolCashFlow, 2)
			So(steps, ShouldHaveLength, 2)
			So(steps[0], ShouldStartWith, "Start tracking your monthly income and expenses.")
		})

		Convey("Then a zero limit returns one step per No answer", func() {
			So(diagnostic.ActionSteps(answers, model.ToolCashFlow, 0), ShouldHaveLength, 10)
		})
	})

	Convey("Given only Yes answers", t, func() {
		Convey("Then there are no steps", func() {
			So(diagnostic.ActionSteps(answersFor(model.ToolMarketing, "YYYYYYYYYY"), model.ToolMarketing, 2), ShouldBeEmpty)
		})
	})

	Convey("Given a No answer matching no category", t, func() {
		Convey("Then the default step is used", func() {
			steps := diagnostic.ActionSteps(freeText("Do you enjoy pizza?"), model.ToolMarketing, 2)
			So(steps, ShouldResemble, []string{diagnostic.DefaultActionStep})
		})
	})
}
