package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"nnx1/internal/cache"
	"nnx1/internal/catalog"
	"nnx1/internal/config"
	"nnx1/internal/model"
	"nnx1/internal/repository"
	"nnx1/pkg/logger"
)

// answersFor builds a full answer set from a Y/N pattern
func answersFor(t *testing.T, tool model.ToolID, pattern string) []model.Answer {
	t.Helper()
	def, err := catalog.Tool(tool)
	require.NoError(t, err)
	require.Len(t, pattern, len(def.Questions))
	out := make([]model.Answer, len(pattern))
	for i, c := range pattern {
		v := model.AnswerNo
		if c == 'Y' {
			v = model.AnswerYes
		}
		out[i] = model.Answer{
			QuestionID:   def.Questions[i].ID,
			QuestionText: def.Questions[i].Text,
			Answer:       v,
		}
	}
	return out
}

type recordedMessage struct {
	SessionID string
	Type      string
	Payload   interface{}
}

type recordingBroadcaster struct {
	mu       sync.Mutex
	messages []recordedMessage
}

func (b *recordingBroadcaster) BroadcastToSession(sessionID string, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, recordedMessage{SessionID: sessionID, Type: msgType, Payload: payload})
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.messages))
	for i, m := range b.messages {
		out[i] = m.Type
	}
	return out
}

// failingResponseRepo fails every write, optionally after blocking until the
// context gives up
type failingResponseRepo struct {
	block bool
	calls int
	mu    sync.Mutex
}

var errStoreDown = errors.New("response store down")

func (r *failingResponseRepo) Save(ctx context.Context, _ *model.QuestionnaireResponse) error {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	if r.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return errStoreDown
}

func (r *failingResponseRepo) Delete(context.Context, string, string) error {
	return errStoreDown
}

func (r *failingResponseRepo) GetBySessionID(context.Context, string) ([]*model.QuestionnaireResponse, error) {
	return nil, errStoreDown
}

func (r *failingResponseRepo) GetByTool(context.Context, model.ToolID) ([]*model.QuestionnaireResponse, error) {
	return nil, errStoreDown
}

type fakeMailer struct {
	err  error
	wait bool
	sent []Email
}

func (m *fakeMailer) Send(ctx context.Context, email Email) error {
	if m.wait {
		<-ctx.Done()
		return ctx.Err()
	}
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

type fakePDFRenderer struct {
	err   error
	pages []string
}

func (r *fakePDFRenderer) Render(_ context.Context, html string) ([]byte, error) {
	r.pages = append(r.pages, html)
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.4 test"), nil
}

type testEnv struct {
	redis     *miniredis.Miniredis
	store     *repository.SQLiteStore
	responses repository.ResponseRepo
	board     cache.LeaderboardCache
	stats     cache.AnalyticsCache
	auth      *AuthService
	analytics *AnalyticsService
	sessions  *SessionService
	events    *recordingBroadcaster
}

type envOption func(*testEnv)

func withResponseRepo(r repository.ResponseRepo) envOption {
	return func(e *testEnv) { e.responses = r }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store, err := repository.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	env := &testEnv{
		redis:     mr,
		store:     store,
		responses: store.Responses(),
		board:     cache.NewLeaderboardCache(client),
		stats:     cache.NewAnalyticsCache(client),
		auth:      NewAuthService("admin", "secret", "test-secret", 24*time.Hour),
		events:    &recordingBroadcaster{},
	}
	for _, opt := range opts {
		opt(env)
	}

	log := logger.NewNop()
	env.analytics = NewAnalyticsService(env.responses, env.board, env.stats, log)
	env.sessions = NewSessionService(
		cache.NewSessionCache(client, time.Hour),
		env.responses,
		env.board,
		env.stats,
		env.analytics,
		env.auth,
		log,
		50*time.Millisecond,
		config.StoreSQLite,
	)
	env.sessions.SetBroadcaster(env.events)
	return env
}

// answerAll records a full pattern through the session service
func (e *testEnv) answerAll(t *testing.T, sessionID, pattern string) {
	t.Helper()
	for i, c := range pattern {
		v := "No"
		if c == 'Y' {
			v = "Yes"
		}
		_, err := e.sessions.RecordAnswer(context.Background(), sessionID, i, v)
		require.NoError(t, err)
	}
}
