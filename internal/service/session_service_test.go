package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nnx1/internal/model"
)

func TestSessionService_Start(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.sessions.Start(ctx, "astrology", "Acme")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, model.ErrUnknownTool)

	resp, err := env.sessions.Start(ctx, "Marketing Effectiveness Diagnostic", "Acme")
	require.NoError(t, err)
	assert.Equal(t, model.ToolMarketing, resp.Session.Tool)
	assert.Empty(t, resp.Session.Answers)
	assert.NotEmpty(t, resp.Session.ID)

	claims, err := env.auth.ValidateSessionToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Session.ID, claims.SessionID)
	assert.Equal(t, model.ToolMarketing, claims.Tool)

	got, err := env.sessions.Get(ctx, resp.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)

	_, err = env.sessions.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_RecordAnswer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	resp, err := env.sessions.Start(ctx, "data-hygiene", "")
	require.NoError(t, err)
	id := resp.Session.ID

	t.Run("out of order", func(t *testing.T) {
		_, err := env.sessions.RecordAnswer(ctx, id, 1, "Yes")
		assert.ErrorIs(t, err, ErrOutOfOrder)
	})

	t.Run("index outside the bank", func(t *testing.T) {
		_, err := env.sessions.RecordAnswer(ctx, id, 10, "Yes")
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = env.sessions.RecordAnswer(ctx, id, -1, "Yes")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := env.sessions.RecordAnswer(ctx, id, 0, "maybe")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := env.sessions.RecordAnswer(ctx, "missing", 0, "Yes")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("in order", func(t *testing.T) {
		answer, err := env.sessions.RecordAnswer(ctx, id, 0, "y")
		require.NoError(t, err)
		assert.Equal(t, model.AnswerYes, answer.Answer)
		assert.NotEmpty(t, answer.QuestionText)

		rows, err := env.responses.GetBySessionID(ctx, id)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, model.AnonymousUserName, rows[0].UserName)
		assert.Equal(t, model.ToolDataHygiene, rows[0].Tool)

		// replaying the same index is out of order now
		_, err = env.sessions.RecordAnswer(ctx, id, 0, "No")
		assert.ErrorIs(t, err, ErrOutOfOrder)
	})
}

func TestSessionService_GoBack(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	resp, err := env.sessions.Start(ctx, "cash-flow", "Acme")
	require.NoError(t, err)
	id := resp.Session.ID

	_, err = env.sessions.GoBack(ctx, id)
	assert.ErrorIs(t, err, ErrNothingToUndo)

	env.answerAll(t, id, "YN")
	session, err := env.sessions.GoBack(ctx, id)
	require.NoError(t, err)
	require.Len(t, session.Answers, 1)
	assert.Equal(t, model.AnswerYes, session.Answers[0].Answer)

	rows, err := env.responses.GetBySessionID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	// the undone question can be answered again
	answer, err := env.sessions.RecordAnswer(ctx, id, 1, "Yes")
	require.NoError(t, err)
	assert.Equal(t, model.AnswerYes, answer.Answer)
}

func TestSessionService_StoreFailureDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	repo := &failingResponseRepo{block: true}
	env := newTestEnv(t, withResponseRepo(repo))
	resp, err := env.sessions.Start(ctx, "marketing", "Acme")
	require.NoError(t, err)

	start := time.Now()
	answer, err := env.sessions.RecordAnswer(ctx, resp.Session.ID, 0, "Yes")
	require.NoError(t, err)
	assert.Equal(t, model.AnswerYes, answer.Answer)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, 1, repo.calls)

	session, err := env.sessions.Get(ctx, resp.Session.ID)
	require.NoError(t, err)
	assert.Len(t, session.Answers, 1)

	_, err = env.sessions.RecordAnswer(ctx, resp.Session.ID, 1, "No")
	require.NoError(t, err)
}

func TestSessionService_Complete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	first, err := env.sessions.Start(ctx, "marketing", "First")
	require.NoError(t, err)
	env.answerAll(t, first.Session.ID, "YYYYYNNNNN")

	_, err = env.sessions.Complete(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	second, err := env.sessions.Start(ctx, "marketing", "Second")
	require.NoError(t, err)
	env.answerAll(t, second.Session.ID, "YYYYYYYYY")
	_, err = env.sessions.Complete(ctx, second.Session.ID)
	assert.ErrorIs(t, err, ErrIncomplete)
	_, err = env.sessions.RecordAnswer(ctx, second.Session.ID, 9, "Yes")
	require.NoError(t, err)

	res, err := env.sessions.Complete(ctx, first.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, res.Evaluation.Score)
	assert.Equal(t, "Level 2: Builder", res.Evaluation.Tier.Label)
	require.NotNil(t, res.Peers)
	assert.Equal(t, int64(1), res.Peers.Count)
	assert.Contains(t, res.Peers.Text, "first business")

	res, err = env.sessions.Complete(ctx, second.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Evaluation.Score)
	require.NotNil(t, res.Peers)
	assert.Equal(t, int64(2), res.Peers.Count)
	assert.Equal(t, 75, res.Peers.Average)
	assert.Equal(t, int64(1), res.Peers.Rank)
	assert.Contains(t, res.Peers.Text, "above the average of 75")

	// completing again re-evaluates without adding a second board entry
	res, err = env.sessions.Complete(ctx, second.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Peers.Count)

	_, err = env.sessions.RecordAnswer(ctx, second.Session.ID, 9, "No")
	assert.ErrorIs(t, err, ErrSessionComplete)
	_, err = env.sessions.GoBack(ctx, second.Session.ID)
	assert.ErrorIs(t, err, ErrSessionComplete)

	assert.Contains(t, env.events.types(), MsgSessionCompleted)

	percents, err := env.analytics.QuestionYesPercents(ctx, model.ToolMarketing)
	require.NoError(t, err)
	require.Len(t, percents, 10)
	assert.Equal(t, 100.0, percents[0].Yes)
	assert.Equal(t, 50.0, percents[9].Yes)
	assert.Equal(t, 50.0, percents[9].No)
}

func TestSessionService_ConcurrentComplete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	resp, err := env.sessions.Start(ctx, "cash-flow", "Acme")
	require.NoError(t, err)
	env.answerAll(t, resp.Session.ID, "YYYYYYYNNN")

	const callers = 64
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := env.sessions.Complete(ctx, resp.Session.ID)
			if err == nil && res.Evaluation.Score != 70 {
				t.Errorf("score = %d, want 70", res.Evaluation.Score)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	questions, err := env.analytics.QuestionYesPercents(ctx, model.ToolCashFlow)
	require.NoError(t, err)
	require.Len(t, questions, 10)
	assert.Equal(t, 100.0, questions[0].Yes)

	counts, err := env.stats.QuestionCounts(ctx, model.ToolCashFlow, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Completed)
	assert.Equal(t, int64(1), counts.Yes[0])
	assert.Equal(t, int64(0), counts.Yes[9])

	summary, err := env.board.Summary(ctx, model.ToolCashFlow)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Count)

	session, err := env.sessions.Get(ctx, resp.Session.ID)
	require.NoError(t, err)
	assert.True(t, session.IsComplete())
}

func TestSessionService_EmailMilestone(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	resp, err := env.sessions.Start(ctx, "data-hygiene", "Acme")
	require.NoError(t, err)
	env.answerAll(t, resp.Session.ID, "YYYYYYYNNN")

	session, err := env.sessions.MarkEmailSubmitted(ctx, resp.Session.ID)
	require.NoError(t, err)
	assert.True(t, session.EmailSubmitted)

	res, err := env.sessions.Complete(ctx, resp.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, res.Evaluation.Score)
	for _, step := range res.Evaluation.Milestones.Steps {
		if step.Label == "Enter Email" {
			assert.True(t, step.Completed)
		}
	}
}
