package service

import (
	"context"
	"fmt"
	"math"

	"nnx1/internal/cache"
	"nnx1/internal/catalog"
	"nnx1/internal/model"
	"nnx1/internal/repository"
	"nnx1/pkg/logger"
)

// AnalyticsService is the read side over stored responses, the peer board
// and the per-question counters
type AnalyticsService struct {
	responses   repository.ResponseRepo
	leaderboard cache.LeaderboardCache
	stats       cache.AnalyticsCache
	log         logger.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(responses repository.ResponseRepo, leaderboard cache.LeaderboardCache, stats cache.AnalyticsCache, log logger.Logger) *AnalyticsService {
	return &AnalyticsService{
		responses:   responses,
		leaderboard: leaderboard,
		stats:       stats,
		log:         log.Named("analytics"),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

// ToolAnalytics aggregates every stored response for a tool. A session counts
// as completed when it has an answer for every question.
func (s *AnalyticsService) ToolAnalytics(ctx context.Context, tool model.ToolID) (*model.ToolAnalytics, error) {
	def, err := catalog.Tool(tool)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	rows, err := s.responses.GetByTool(ctx, tool)
	if err != nil {
		return nil, fmt.Errorf("load responses: %w", err)
	}

	perSession := map[string]int{}
	type counter struct{ yes, total int }
	perQuestion := map[string]*counter{}
	totalYes := 0
	for _, r := range rows {
		perSession[r.SessionID]++
		c, ok := perQuestion[r.QuestionCode]
		if !ok {
			c = &counter{}
			perQuestion[r.QuestionCode] = c
		}
		c.total++
		if r.Answer == model.AnswerYes {
			c.yes++
			totalYes++
		}
	}

	completed := 0
	for _, n := range perSession {
		if n == catalog.QuestionsPerTool {
			completed++
		}
	}

	stats := make([]model.QuestionStat, 0, len(def.Questions))
	for _, q := range def.Questions {
		st := model.QuestionStat{QuestionCode: q.Code, QuestionText: q.Text}
		if c, ok := perQuestion[q.Code]; ok {
			st.YesPercentage = percent(c.yes, c.total)
			st.TotalAnswers = c.total
		}
		stats = append(stats, st)
	}

	return &model.ToolAnalytics{
		Tool:              tool,
		TotalSessions:     len(perSession),
		CompletedSessions: completed,
		AverageYesAnswers: percent(totalYes, len(rows)),
		QuestionStats:     stats,
	}, nil
}

// SessionSummary is the stored view of one session
func (s *AnalyticsService) SessionSummary(ctx context.Context, sessionID string) (*model.SessionSummary, error) {
	rows, err := s.responses.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load responses: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrSessionNotFound
	}

	summary := &model.SessionSummary{
		TotalQuestions:    catalog.QuestionsPerTool,
		AnsweredQuestions: len(rows),
		Tool:              rows[0].Tool,
		UserName:          rows[0].UserName,
		Email:             rows[0].EmailAddress,
		Responses:         rows,
	}
	for _, r := range rows {
		if r.Answer == model.AnswerYes {
			summary.YesAnswers++
		} else {
			summary.NoAnswers++
		}
	}
	return summary, nil
}

// PeerComparison places a score against completed sessions of the same tool.
// sessionID may be empty when the score is not on the board.
func (s *AnalyticsService) PeerComparison(ctx context.Context, tool model.ToolID, sessionID string, score int) (*model.PeerComparison, error) {
	summary, err := s.leaderboard.Summary(ctx, tool)
	if err != nil {
		return nil, fmt.Errorf("load peer board: %w", err)
	}

	peers := &model.PeerComparison{
		Average: int(math.Round(summary.Average)),
		Count:   summary.Count,
	}
	if sessionID != "" {
		rank, err := s.leaderboard.GetRank(ctx, tool, sessionID)
		if err != nil {
			return nil, fmt.Errorf("load rank: %w", err)
		}
		if rank > 0 {
			peers.Rank = rank
		}
	}
	peers.Text = peerText(score, peers)
	return peers, nil
}

func peerText(score int, p *model.PeerComparison) string {
	switch {
	case p.Count == 0 || (p.Count == 1 && p.Rank == 1):
		return "You're the first business to complete this diagnostic. Check back as more businesses join."
	case score > p.Average:
		return fmt.Sprintf("Your score of %d is above the average of %d across %d businesses.", score, p.Average, p.Count)
	case score < p.Average:
		return fmt.Sprintf("Your score of %d is below the average of %d across %d businesses.", score, p.Average, p.Count)
	default:
		return fmt.Sprintf("Your score of %d matches the average across %d businesses.", score, p.Count)
	}
}

// QuestionYesPercents returns the Yes/No share per question position over
// completed sessions, padded to the bank size. The Redis counters are used
// when they have data; otherwise the response store is scanned.
func (s *AnalyticsService) QuestionYesPercents(ctx context.Context, tool model.ToolID) ([]model.YesNoPercent, error) {
	n := catalog.QuestionsPerTool

	counts, err := s.stats.QuestionCounts(ctx, tool, n)
	if err != nil {
		s.log.Warn(ctx, "question counters unavailable, scanning responses", logger.String("tool", string(tool)), logger.Error(err))
	}
	if err == nil && counts.Completed > 0 {
		out := make([]model.YesNoPercent, n)
		for i, yes := range counts.Yes {
			out[i] = yesNo(int(yes), int(counts.Completed))
		}
		return out, nil
	}

	rows, err := s.responses.GetByTool(ctx, tool)
	if err != nil {
		return nil, fmt.Errorf("load responses: %w", err)
	}
	codes := catalog.QuestionCodes(tool)
	index := make(map[string]int, len(codes))
	for i, c := range codes {
		index[c] = i
	}

	bySession := map[string][]*model.QuestionnaireResponse{}
	for _, r := range rows {
		bySession[r.SessionID] = append(bySession[r.SessionID], r)
	}
	yes := make([]int, n)
	completed := 0
	for _, rs := range bySession {
		if len(rs) != n {
			continue
		}
		completed++
		for _, r := range rs {
			if i, ok := index[r.QuestionCode]; ok && r.Answer == model.AnswerYes {
				yes[i]++
			}
		}
	}

	out := make([]model.YesNoPercent, n)
	if completed == 0 {
		return out, nil
	}
	for i := range out {
		out[i] = yesNo(yes[i], completed)
	}
	return out, nil
}

func yesNo(yes, total int) model.YesNoPercent {
	return model.YesNoPercent{
		Yes: percent(yes, total),
		No:  percent(total-yes, total),
	}
}

// PeerYes extracts the Yes column for the report chart
func PeerYes(percents []model.YesNoPercent) []float64 {
	out := make([]float64, len(percents))
	for i, p := range percents {
		out[i] = p.Yes
	}
	return out
}
