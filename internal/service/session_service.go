package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nnx1/internal/cache"
	"nnx1/internal/catalog"
	"nnx1/internal/diagnostic"
	"nnx1/internal/model"
	"nnx1/internal/repository"
	"nnx1/pkg/logger"
	"nnx1/pkg/metrics"
)

// SessionService collects answers one question at a time. The cached session
// is authoritative; response-store writes are best-effort.
type SessionService struct {
	sessions     cache.SessionCache
	responses    repository.ResponseRepo
	leaderboard  cache.LeaderboardCache
	stats        cache.AnalyticsCache
	analytics    *AnalyticsService
	auth         *AuthService
	log          logger.Logger
	storeTimeout time.Duration
	storeBackend string
	broadcaster  Broadcaster
	now          func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(
	sessions cache.SessionCache,
	responses repository.ResponseRepo,
	leaderboard cache.LeaderboardCache,
	stats cache.AnalyticsCache,
	analytics *AnalyticsService,
	auth *AuthService,
	log logger.Logger,
	storeTimeout time.Duration,
	storeBackend string,
) *SessionService {
	return &SessionService{
		sessions:     sessions,
		responses:    responses,
		leaderboard:  leaderboard,
		stats:        stats,
		analytics:    analytics,
		auth:         auth,
		log:          log.Named("session"),
		storeTimeout: storeTimeout,
		storeBackend: storeBackend,
		now:          time.Now,
	}
}

// SetBroadcaster sets the broadcaster for completion events
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Start opens a session for a tool and returns it with a scoped token
func (s *SessionService) Start(ctx context.Context, toolRef, name string) (*model.StartSessionResponse, error) {
	tool, err := model.ParseTool(toolRef)
	if err != nil {
		metrics.RecordUnknownTool()
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	session := &model.Session{
		ID:        uuid.NewString(),
		Tool:      tool,
		Name:      name,
		Answers:   []model.Answer{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	token, err := s.auth.GenerateSessionToken(session.ID, tool)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	metrics.RecordSessionStarted(string(tool))
	s.log.Info(ctx, "session started", logger.String("sessionId", session.ID), logger.String("tool", string(tool)))
	return &model.StartSessionResponse{Session: session, Token: token}, nil
}

// Get returns a session or ErrSessionNotFound
func (s *SessionService) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// RecordAnswer appends the answer for questionIndex, which must be the next
// unanswered question
func (s *SessionService) RecordAnswer(ctx context.Context, sessionID string, questionIndex int, value string) (*model.Answer, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsComplete() {
		return nil, ErrSessionComplete
	}
	if questionIndex < 0 || questionIndex >= catalog.QuestionsPerTool {
		return nil, fmt.Errorf("%w: question index %d outside 0..%d", ErrInvalidInput, questionIndex, catalog.QuestionsPerTool-1)
	}
	if questionIndex != len(session.Answers) {
		return nil, fmt.Errorf("%w: expected question %d, got %d", ErrOutOfOrder, len(session.Answers), questionIndex)
	}
	answerValue, err := model.ParseAnswerValue(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	question, err := catalog.Question(session.Tool, questionIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	answer := model.Answer{
		QuestionID:   question.ID,
		QuestionText: question.Text,
		Answer:       answerValue,
	}
	session.Answers = append(session.Answers, answer)
	session.UpdatedAt = s.now().UTC()
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	metrics.RecordAnswer(string(session.Tool), string(answerValue))
	s.storeResponse(ctx, session, question, answerValue)
	return &answer, nil
}

// storeResponse makes one bounded attempt to persist the answer row
func (s *SessionService) storeResponse(ctx context.Context, session *model.Session, question model.Question, value model.AnswerValue) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout)
	defer cancel()

	err := s.responses.Save(ctx, &model.QuestionnaireResponse{
		SessionID:    session.ID,
		UserName:     session.Name,
		Tool:         session.Tool,
		ToolName:     session.Tool.DisplayName(),
		QuestionCode: question.Code,
		QuestionText: question.Text,
		Answer:       value,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		metrics.RecordResponseStoreFailure(s.storeBackend)
		s.log.Warn(ctx, "response store write failed",
			logger.String("sessionId", session.ID),
			logger.String("questionCode", question.Code),
			logger.Error(err))
	}
}

// GoBack removes the most recent answer
func (s *SessionService) GoBack(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsComplete() {
		return nil, ErrSessionComplete
	}
	if len(session.Answers) == 0 {
		return nil, ErrNothingToUndo
	}

	last := len(session.Answers) - 1
	session.Answers = session.Answers[:last]
	session.UpdatedAt = s.now().UTC()
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	if code, err := catalog.QuestionCode(session.Tool, last); err == nil {
		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout)
		if err := s.responses.Delete(dctx, session.ID, code); err != nil {
			metrics.RecordResponseStoreFailure(s.storeBackend)
			s.log.Warn(ctx, "response store delete failed", logger.String("sessionId", session.ID), logger.Error(err))
		}
		cancel()
	}
	return session, nil
}

// MarkEmailSubmitted completes the Enter Email milestone
func (s *SessionService) MarkEmailSubmitted(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.EmailSubmitted {
		return session, nil
	}
	session.EmailSubmitted = true
	session.UpdatedAt = s.now().UTC()
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// Complete evaluates a fully answered session. Only the call that claims the
// completion stamps the time and adds the score to the peer board and question
// stats; every other call, concurrent or later, only re-evaluates.
func (s *SessionService) Complete(ctx context.Context, sessionID string) (*model.CompleteSessionResponse, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(session.Answers) < catalog.QuestionsPerTool {
		return nil, fmt.Errorf("%w: %d of %d answered", ErrIncomplete, len(session.Answers), catalog.QuestionsPerTool)
	}

	eval, err := diagnostic.Evaluate(session.Answers, session.Tool, diagnostic.WithEmailSubmitted(session.EmailSubmitted))
	if err != nil {
		return nil, err
	}

	if !session.IsComplete() {
		claimed, err := s.sessions.ClaimCompletion(ctx, session.ID)
		if err != nil {
			return nil, fmt.Errorf("claim completion: %w", err)
		}
		if claimed {
			if err := s.recordCompletion(ctx, session, eval); err != nil {
				return nil, err
			}
		}
	}

	resp := &model.CompleteSessionResponse{Evaluation: eval}
	peers, err := s.analytics.PeerComparison(ctx, session.Tool, session.ID, eval.Score)
	if err != nil {
		s.log.Warn(ctx, "peer comparison unavailable", logger.String("sessionId", session.ID), logger.Error(err))
	} else {
		resp.Peers = peers
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(session.ID, MsgSessionCompleted, map[string]interface{}{
			"score": eval.Score,
			"tier":  eval.Tier.Label,
		})
	}
	return resp, nil
}

func (s *SessionService) recordCompletion(ctx context.Context, session *model.Session, eval *model.Evaluation) error {
	completedAt := s.now().UTC()
	session.CompletedAt = &completedAt
	session.UpdatedAt = completedAt
	if err := s.sessions.Set(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if err := s.leaderboard.UpdateScore(ctx, session.Tool, session.ID, eval.Score); err != nil {
		s.log.Warn(ctx, "peer board update failed", logger.String("sessionId", session.ID), logger.Error(err))
	}
	if err := s.stats.RecordCompletion(ctx, session.Tool, session.Answers); err != nil {
		s.log.Warn(ctx, "question stats update failed", logger.String("sessionId", session.ID), logger.Error(err))
	}

	metrics.RecordSessionCompleted(string(session.Tool))
	metrics.RecordEvaluation(string(session.Tool), eval.Tier.Label)
	s.log.Info(ctx, "session completed",
		logger.String("sessionId", session.ID),
		logger.Int("score", eval.Score),
		logger.String("tier", eval.Tier.Label))
	return nil
}
