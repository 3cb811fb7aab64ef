package addition

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/abhisek/mathfacts/internal/mastery"
	"github.com/abhisek/mathfacts/internal/session"
	"github.com/abhisek/mathfacts/internal/tracker"
)

var t0 = time.Date(2025, 8, 3, 17, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, as *memStore) *Service {
	t.Helper()
	n := 0
	return NewService(as,
		WithClock(func() time.Time { return t0 }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		WithLogger(zaptest.NewLogger(t)),
	)
}

func attempt(op1, op2 int, ok bool) session.Attempt {
	return session.Attempt{Operand1: op1, Operand2: op2, IsCorrect: ok, ResponseTimeMs: 1800}
}

func TestTrackAttempt_CreatesAndClassifies(t *testing.T) {
	ms := newMemStore()
	svc := newTestService(t, ms)
	ctx := context.Background()

	rec, err := svc.TrackAttempt(ctx, "u1", attempt(3, 4, true))
	require.NoError(t, err)
	assert.Equal(t, "id-1", rec.ID)
	assert.Equal(t, "3+4", rec.FactKey)
	assert.Equal(t, 1, rec.TotalAttempts)
	assert.Equal(t, mastery.LevelLearning, rec.Level)
	require.NotNil(t, rec.UpdatedAt)
	assert.True(t, rec.UpdatedAt.Equal(t0))

	for i := 0; i < 9; i++ {
		rec, err = svc.TrackAttempt(ctx, "u1", attempt(3, 4, true))
		require.NoError(t, err)
	}
	assert.Equal(t, "id-1", rec.ID, "id is kept across updates")
	assert.Equal(t, 10, rec.TotalAttempts)
	assert.Equal(t, mastery.LevelMastered, rec.Level)

	got, err := svc.GetFactPerformance(ctx, "u1", 3, 4)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 10, got.CorrectAttempts)

	missing, err := svc.GetFactPerformance(ctx, "u1", 4, 3)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTrackAttempt_UsesSuppliedTimestamp(t *testing.T) {
	ms := newMemStore()
	svc := newTestService(t, ms)

	at := t0.Add(-time.Hour)
	a := attempt(1, 1, true)
	a.AttemptedAt = &at
	rec, err := svc.TrackAttempt(context.Background(), "u1", a)
	require.NoError(t, err)
	require.NotNil(t, rec.LastAttempted)
	assert.True(t, rec.LastAttempted.Equal(at))
	assert.True(t, rec.UpdatedAt.Equal(t0))
}

func TestTrackAttempt_Errors(t *testing.T) {
	ms := newMemStore()
	svc := newTestService(t, ms)
	ctx := context.Background()

	bad := attempt(1, 2, true)
	bad.IncorrectAttempts = -1
	_, err := svc.TrackAttempt(ctx, "u1", bad)
	assert.ErrorIs(t, err, session.ErrInvalidAttempt)

	ms.upsertErr = errors.New("disk full")
	_, err = svc.TrackAttempt(ctx, "u1", attempt(1, 2, true))
	var se *tracker.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "upsert addition facts", se.Op)
	assert.ErrorIs(t, err, tracker.ErrStore)
}

func TestGetWeakFacts(t *testing.T) {
	ms := newMemStore()
	ms.seed("u1", 7, 8, 5, 1) // 20%
	ms.seed("u1", 6, 7, 5, 4) // 80%, still weak
	ms.seed("u1", 2, 2, 5, 5) // 100%
	ms.seed("u1", 9, 9, 2, 0) // too few attempts
	ms.seed("u2", 7, 7, 5, 0) // other learner
	svc := newTestService(t, ms)

	weak, err := svc.GetWeakFacts(context.Background(), "u1", DefaultMinAttempts, DefaultMaxAccuracy, 0)
	require.NoError(t, err)
	require.Len(t, weak, 2)
	assert.Equal(t, "7+8", weak[0].FactKey)
	assert.Equal(t, "6+7", weak[1].FactKey)

	weak, err = svc.GetWeakFacts(context.Background(), "u1", DefaultMinAttempts, DefaultMaxAccuracy, 1)
	require.NoError(t, err)
	assert.Len(t, weak, 1)
}

func TestGetMasteredFacts(t *testing.T) {
	ms := newMemStore()
	ms.seed("u1", 1, 1, 10, 10)
	ms.seed("u1", 1, 2, 10, 10)
	ms.seed("u1", 1, 3, 10, 5)
	svc := newTestService(t, ms)

	mastered, err := svc.GetMasteredFacts(context.Background(), "u1", 0)
	require.NoError(t, err)
	require.Len(t, mastered, 2)
	assert.Equal(t, "1+1", mastered[0].FactKey)
	assert.Equal(t, "1+2", mastered[1].FactKey)
}

func TestGetPerformanceSummary(t *testing.T) {
	ms := newMemStore()
	ms.seed("u1", 1, 1, 10, 10) // mastered
	ms.seed("u1", 1, 2, 10, 9)  // practicing
	ms.seed("u1", 1, 3, 2, 2)   // learning
	svc := newTestService(t, ms)

	sum, err := svc.GetPerformanceSummary(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, sum.TotalFacts)
	assert.Equal(t, 1, sum.Mastered)
	assert.Equal(t, 1, sum.Practicing)
	assert.Equal(t, 1, sum.Learning)
	assert.Equal(t, 22, sum.TotalAttempts)

	ms.queryErr = errors.New("boom")
	_, err = svc.GetPerformanceSummary(context.Background(), "u1")
	assert.ErrorIs(t, err, tracker.ErrStore)
}

func TestGetPracticeRecommendations(t *testing.T) {
	ctx := context.Background()

	t.Run("mastered all", func(t *testing.T) {
		ms := newMemStore()
		for a := 0; a <= 1; a++ {
			for b := 0; b <= 1; b++ {
				ms.seed("u1", a, b, 10, 10)
			}
		}
		rec, err := newTestService(t, ms).GetPracticeRecommendations(ctx, "u1", 0, 1)
		require.NoError(t, err)
		assert.Equal(t, 4, rec.TotalPossibleFacts)
		assert.Equal(t, 4, rec.MasteredFactsCount)
		assert.Equal(t, 0, rec.WeakFactsCount)
		assert.Equal(t, "0 to 1", rec.SessionRange())
		assert.Contains(t, rec.Message, "mastered all facts")
	})

	t.Run("no weak facts", func(t *testing.T) {
		rec, err := newTestService(t, newMemStore()).GetPracticeRecommendations(ctx, "u1", 0, 9)
		require.NoError(t, err)
		assert.Equal(t, 100, rec.TotalPossibleFacts)
		assert.Contains(t, rec.Message, "No weak facts")
		assert.Empty(t, rec.WeakFacts)
	})

	t.Run("few weak facts in range", func(t *testing.T) {
		ms := newMemStore()
		ms.seed("u1", 2, 3, 5, 1)
		ms.seed("u1", 3, 3, 5, 2)
		ms.seed("u1", 12, 3, 5, 0) // outside the range
		rec, err := newTestService(t, ms).GetPracticeRecommendations(ctx, "u1", 0, 9)
		require.NoError(t, err)
		assert.Equal(t, 2, rec.WeakFactsCount)
		assert.Equal(t, "Focus on these 2 facts that need more practice.", rec.Message)
	})

	t.Run("many weak facts", func(t *testing.T) {
		ms := newMemStore()
		for b := 0; b < 8; b++ {
			ms.seed("u1", 5, b, 4, 1)
		}
		rec, err := newTestService(t, ms).GetPracticeRecommendations(ctx, "u1", 0, 9)
		require.NoError(t, err)
		assert.Equal(t, 8, rec.WeakFactsCount)
		assert.Len(t, rec.WeakFacts, 5)
		assert.Equal(t, "You have 8 facts to work on. Take your time with each one.", rec.Message)
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := newTestService(t, newMemStore()).GetPracticeRecommendations(ctx, "u1", 5, 2)
		assert.Error(t, err)
	})
}

func TestRecommendationMessage_Large(t *testing.T) {
	assert.Equal(t,
		"11 facts need attention. Consider practicing smaller ranges for better focus.",
		recommendationMessage(11, 0, 100))
}

func TestAnalyzeSession(t *testing.T) {
	ms := newMemStore()
	ms.seed("u1", 4, 4, 9, 9) // one more correct answer masters it
	svc := newTestService(t, ms)

	attempts := []session.Attempt{
		attempt(4, 4, true),
		attempt(2, 5, false),
		attempt(2, 5, false),
		attempt(2, 5, true),
		attempt(1, 1, true),
	}
	out, err := svc.AnalyzeSession(context.Background(), "u1", attempts)
	require.NoError(t, err)

	assert.Equal(t, 5, out.TotalAttempts)
	assert.Equal(t, 3, out.CorrectAttempts)
	assert.Equal(t, 60.0, out.Accuracy)
	assert.Equal(t, 3, out.FactsPracticed)
	assert.Equal(t, 1, ms.upserts, "one bulk write per session")

	require.Len(t, out.MasteryImprovements, 1)
	assert.Equal(t, mastery.Transition{FactKey: "4+4", From: mastery.LevelPracticing, To: mastery.LevelMastered}, out.MasteryImprovements[0])
	assert.Equal(t, []string{"2+5"}, out.FactsNeedingPractice)

	require.Len(t, out.Records, 3)
	assert.Equal(t, "4+4", out.Records[0].FactKey)
	assert.Equal(t, 10, out.Records[0].TotalAttempts)
	assert.Equal(t, "2+5", out.Records[1].FactKey)
	assert.Equal(t, 3, out.Records[1].TotalAttempts)
	assert.Equal(t, 10, ms.records[recKey("u1", "4+4")].TotalAttempts)
}

func TestAnalyzeSession_Errors(t *testing.T) {
	ctx := context.Background()
	ms := newMemStore()
	svc := newTestService(t, ms)

	_, err := svc.AnalyzeSession(ctx, "u1", nil)
	assert.ErrorIs(t, err, ErrNoAttempts)

	bad := attempt(1, 1, true)
	bad.ResponseTimeMs = -5
	_, err = svc.AnalyzeSession(ctx, "u1", []session.Attempt{attempt(1, 2, true), bad})
	assert.ErrorIs(t, err, session.ErrInvalidAttempt)
	assert.Zero(t, ms.upserts, "nothing written for an invalid session")

	ms.getErr = errors.New("offline")
	_, err = svc.AnalyzeSession(ctx, "u1", []session.Attempt{attempt(1, 2, true)})
	assert.ErrorIs(t, err, tracker.ErrStore)
}
