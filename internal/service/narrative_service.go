package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"text/template"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/kaptinlin/jsonrepair"

	"nnx1/internal/config"
	"nnx1/internal/diagnostic"
	"nnx1/internal/llm"
	"nnx1/internal/model"
	"nnx1/pkg/logger"
	"nnx1/pkg/metrics"
)

// maxNarrativeInsights caps what a model may return
const maxNarrativeInsights = 3

const narrativeSystemPrompt = "You are a professional business consultant specializing in small business diagnostics and strategic planning."

var narrativePrompt = template.Must(template.New("narrative").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`You are a friendly business advisor helping small business owners improve their operations. Use a simple, supportive tone at a 6th-grade reading level.

The client just completed a diagnostic tool called: "{{.ToolName}}".
Here are their answers:
{{range $i, $a := .Answers}}{{inc $i}}. {{$a.QuestionText}} - {{$a.Answer}}
{{end}}
Generate exactly 3 insights based on their actual answers:
1. Summarize the good practices from their "Yes" answers in 1-2 lines. Do not repeat the questions.
2. From their "No" answers, identify the most important area for improvement with a helpful action step.
3. Identify another key area for improvement from their "No" answers with a helpful action step.

Special cases:
- If ALL answers are "Yes": praise their strong foundation and suggest advanced opportunities.
- If ALL answers are "No": motivate them to take first steps toward success.
- If mostly "Yes" (7+ yes): focus on the few "No" answers and expand them into helpful insights.
- If mostly "No" (7+ no): summarize the few "Yes" answers, then focus on key "No" areas.

Use statements only, never end an insight with a question mark. Avoid emojis and icons.

Respond with JSON only, in this shape:
{"insights": ["first insight", "second insight", "third insight"]}`))

// NarrativeResult is the free-text insight set and where it came from
type NarrativeResult struct {
	Insights []model.NarrativeInsight `json:"insights"`
	Source   string                   `json:"source"`
}

// NarrativeService produces report insights from the language model and
// falls back to deterministic copy on any failure. It never returns an error.
type NarrativeService struct {
	provider    llm.Provider
	cache       *lru.Cache[string, []model.NarrativeInsight]
	timeout     time.Duration
	maxTokens   int
	temperature float32
	log         logger.Logger
}

// NewNarrativeService creates a narrative service. provider may be nil, in
// which case every call uses the deterministic fallback.
func NewNarrativeService(provider llm.Provider, cfg config.NarrativeConfig, log logger.Logger) (*NarrativeService, error) {
	s := &NarrativeService{
		provider:    provider,
		timeout:     cfg.Timeout,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		log:         log.Named("narrative"),
	}
	if cfg.CacheSize > 0 {
		c, err := lru.New[string, []model.NarrativeInsight](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("create narrative cache: %w", err)
		}
		s.cache = c
	}
	return s, nil
}

// Generate returns three insights for an answer set
func (s *NarrativeService) Generate(ctx context.Context, tool model.ToolID, answers []model.Answer) NarrativeResult {
	if s.provider == nil {
		return s.fallback(tool, answers, model.SourceFallback)
	}

	key := narrativeKey(tool, answers)
	if s.cache != nil {
		if insights, ok := s.cache.Get(key); ok {
			metrics.RecordNarrativeCacheHit()
			metrics.RecordNarrative(s.provider.Name())
			return NarrativeResult{Insights: cloneInsights(insights), Source: s.provider.Name()}
		}
	}

	insights, err := s.generate(ctx, tool, answers)
	if err != nil {
		s.log.Warn(ctx, "narrative generation failed, using fallback",
			logger.String("provider", s.provider.Name()),
			logger.String("tool", string(tool)),
			logger.Error(err))
		return s.fallback(tool, answers, model.SourceFallbackAfterError)
	}

	if s.cache != nil {
		s.cache.Add(key, cloneInsights(insights))
	}
	metrics.RecordNarrative(s.provider.Name())
	return NarrativeResult{Insights: insights, Source: s.provider.Name()}
}

func (s *NarrativeService) generate(ctx context.Context, tool model.ToolID, answers []model.Answer) ([]model.NarrativeInsight, error) {
	var prompt strings.Builder
	err := narrativePrompt.Execute(&prompt, struct {
		ToolName string
		Answers  []model.Answer
	}{tool.DisplayName(), answers})
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	req := llm.UserPrompt(narrativeSystemPrompt, prompt.String())
	req.JSON = true
	req.MaxTokens = s.maxTokens
	req.Temperature = s.temperature

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.provider.Generate(ctx, req)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		metrics.RecordNarrativeLatency(s.provider.Name(), "error", elapsed)
		return nil, err
	}

	insights, err := ParseNarrative(resp.Content)
	if err != nil {
		metrics.RecordNarrativeLatency(s.provider.Name(), "invalid", elapsed)
		return nil, err
	}
	metrics.RecordNarrativeLatency(s.provider.Name(), "ok", elapsed)
	s.log.Debug(ctx, "narrative generated",
		logger.String("model", resp.Model),
		logger.Int("outputTokens", resp.Usage.OutputTokens),
		logger.Float64("seconds", elapsed))
	return insights, nil
}

func (s *NarrativeService) fallback(tool model.ToolID, answers []model.Answer, source string) NarrativeResult {
	metrics.RecordNarrative(source)
	return NarrativeResult{Insights: FallbackNarrative(tool, answers), Source: source}
}

func narrativeKey(tool model.ToolID, answers []model.Answer) string {
	h := sha256.New()
	h.Write([]byte(tool))
	for _, a := range answers {
		h.Write([]byte{0})
		h.Write([]byte(a.QuestionText))
		h.Write([]byte{0})
		h.Write([]byte(a.Answer))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func cloneInsights(in []model.NarrativeInsight) []model.NarrativeInsight {
	return append([]model.NarrativeInsight(nil), in...)
}

// narrativeItem accepts either a bare string or an object with a description
type narrativeItem string

func (n *narrativeItem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = narrativeItem(s)
		return nil
	}
	var obj struct {
		Description string `json:"description"`
		Insight     string `json:"insight"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Description != "" {
		*n = narrativeItem(obj.Description)
	} else {
		*n = narrativeItem(obj.Insight)
	}
	return nil
}

type narrativePayload struct {
	Insights []narrativeItem `json:"insights"`
}

var (
	codeFence    = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
	numberPrefix = regexp.MustCompile(`^\d+\.\s*`)
	insightLabel = regexp.MustCompile(`(?i)^insight:\s*`)
)

// ParseNarrative extracts insights from model output. JSON is tried first
// (repairing it when malformed), then numbered "Insight:" lines. Insights
// ending in a question mark are dropped.
func ParseNarrative(content string) ([]model.NarrativeInsight, error) {
	content = strings.TrimSpace(content)
	if m := codeFence.FindStringSubmatch(content); m != nil {
		content = m[1]
	}

	var items []string
	if strings.HasPrefix(content, "{") {
		payload, err := decodeNarrativeJSON(content)
		if err == nil {
			for _, it := range payload.Insights {
				items = append(items, string(it))
			}
		}
	}
	if items == nil {
		items = parseInsightLines(content)
	}

	var out []model.NarrativeInsight
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" || strings.HasSuffix(it, "?") {
			continue
		}
		out = append(out, model.NarrativeInsight{Description: it})
		if len(out) == maxNarrativeInsights {
			break
		}
	}
	if len(out) == 0 {
		return nil, &llm.ErrInvalidResponse{Content: content, Err: errors.New("no usable insights")}
	}
	return out, nil
}

func decodeNarrativeJSON(content string) (*narrativePayload, error) {
	var payload narrativePayload
	err := json.Unmarshal([]byte(content), &payload)
	if err == nil {
		return &payload, nil
	}
	repaired, rerr := jsonrepair.JSONRepair(content)
	if rerr != nil {
		return nil, fmt.Errorf("decode narrative: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &payload); err != nil {
		return nil, fmt.Errorf("decode repaired narrative: %w", err)
	}
	return &payload, nil
}

func parseInsightLines(content string) []string {
	var items []string
	for _, line := range strings.Split(content, "\n") {
		line = numberPrefix.ReplaceAllString(strings.TrimSpace(line), "")
		if !insightLabel.MatchString(line) {
			continue
		}
		items = append(items, insightLabel.ReplaceAllString(line, ""))
	}
	return items
}

// FallbackNarrative is the deterministic insight copy used whenever the model
// is unavailable
func FallbackNarrative(tool model.ToolID, answers []model.Answer) []model.NarrativeInsight {
	yes, no := diagnostic.CountAnswers(answers)
	total := len(answers)

	switch {
	case total > 0 && yes == total:
		return []model.NarrativeInsight{
			{Description: "Excellent! Your business shows strong practices across all areas. You have a solid foundation for growth and scaling."},
			{Description: "Consider getting a detailed analysis to identify advanced optimization opportunities that could take your business to the next level."},
			{Description: "Explore professional consulting to discover hidden growth opportunities and advanced strategies for your business."},
		}
	case total > 0 && no == total:
		return []model.NarrativeInsight{
			{Description: "Taking this diagnostic is your first step toward business success. Every great business started exactly where you are now."},
			{Description: "Start with one simple improvement this week. Pick the easiest area and take one small action to begin building your business foundation."},
			{Description: "Get your detailed personalized report to see exactly which steps will have the biggest impact on your business growth."},
		}
	}

	var lead string
	switch {
	case yes*10 >= total*7:
		lead = fmt.Sprintf("Your business has strong practices in %d key areas. This solid foundation gives you a great advantage for growth and improvement.", yes)
	case no*10 >= total*7:
		switch yes {
		case 0:
			lead = "You're taking the right first step by completing this diagnostic. Every improvement will make a big difference."
		case 1:
			lead = "You have 1 area working well. Build on these strengths while improving other areas."
		default:
			lead = fmt.Sprintf("You have %d areas working well. Build on these strengths while improving other areas.", yes)
		}
	default:
		lead = fmt.Sprintf("You have %d strong areas and %d opportunities for improvement. This balanced foundation gives you clear direction for growth.", yes, no)
	}

	out := []model.NarrativeInsight{{Description: lead}}
	for _, step := range diagnostic.ActionSteps(answers, tool, 2) {
		out = append(out, model.NarrativeInsight{Description: step})
	}
	return out
}
