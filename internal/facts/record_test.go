package facts

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathfacts/internal/mastery"
	"github.com/abhisek/mathfacts/internal/spacedrep"
)

var now = time.Date(2025, 4, 2, 15, 4, 5, 123456789, time.UTC)

func TestNewRecord(t *testing.T) {
	r := NewRecord(NewKey("u1", 7, 8), "id-1", now)

	assert.Equal(t, "u1", r.UserID)
	assert.Equal(t, "7+8", r.FactKey)
	assert.Equal(t, 0, r.TotalAttempts)
	assert.Equal(t, 0, r.RepetitionNumber)
	assert.Equal(t, spacedrep.DefaultEasinessFactor, r.EasinessFactor)
	assert.Equal(t, 1, r.IntervalDays)
	require.NotNil(t, r.NextReviewDate)
	assert.True(t, r.NextReviewDate.Equal(now.AddDate(0, 0, 1)))
	assert.False(t, r.IsDueForReview(now))
	assert.True(t, r.IsDueForReview(now.AddDate(0, 0, 1)))
	assert.Equal(t, mastery.LevelLearning, r.Level())
}

func TestRecord_Key(t *testing.T) {
	r := NewRecord(NewKey("u1", 3, 8), "id-1", now)
	k, err := r.Key()
	require.NoError(t, err)
	assert.Equal(t, NewKey("u1", 3, 8), k)
}

func TestRecord_JSONFieldNames(t *testing.T) {
	r := NewRecord(NewKey("u1", 7, 8), "id-1", now)
	r.Stats = r.Stats.Record(true, 1800, now)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))

	for _, name := range []string{
		"id", "user_id", "fact_key", "total_attempts", "correct_attempts",
		"total_response_time_ms", "fastest_response_ms", "slowest_response_ms",
		"last_attempted", "repetition_number", "easiness_factor", "interval_days",
		"next_review_date", "created_at", "updated_at",
	} {
		assert.Contains(t, fields, name)
	}
	assert.Nil(t, fields["updated_at"])
	assert.Equal(t, 2.5, fields["easiness_factor"])
	assert.Equal(t, "2025-04-02T15:04:05.123456789Z", fields["last_attempted"])
}

func TestRecord_JSONRoundTrip(t *testing.T) {
	r := NewRecord(NewKey("u1", 7, 8), "id-1", now)
	r.Stats = r.Stats.Record(true, 1800, now).Record(false, 4000, now.Add(time.Minute))
	r.EasinessFactor = 2.36
	updated := now.Add(time.Hour)
	r.UpdatedAt = &updated

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var got Record
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, r, got)
}

func TestRecord_CloneIsDeep(t *testing.T) {
	r := NewRecord(NewKey("u1", 7, 8), "id-1", now)
	r.Stats = r.Stats.Record(true, 1800, now)

	c := r.Clone()
	*c.NextReviewDate = now.AddDate(1, 0, 0)
	*c.FastestResponseMs = 1
	*c.CreatedAt = now.AddDate(1, 0, 0)

	assert.True(t, r.NextReviewDate.Equal(now.AddDate(0, 0, 1)))
	assert.Equal(t, int64(1800), *r.FastestResponseMs)
	assert.True(t, r.CreatedAt.Equal(now))
}

func TestAttempt_Helpers(t *testing.T) {
	answer := 15
	a := Attempt{UserAnswer: &answer, ResponseTimeMs: 2500}
	assert.False(t, a.Skipped())
	assert.Equal(t, 2.5, a.ResponseTimeSeconds())

	a.UserAnswer = nil
	assert.True(t, a.Skipped())
}

func TestAttempt_JSONGradeField(t *testing.T) {
	a := Attempt{ID: "a1", FactKey: "7+8", Grade: spacedrep.GradeHesitant, AttemptedAt: now}
	data, err := json.Marshal(a)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, float64(4), fields["sm2_grade"])
	assert.Nil(t, fields["user_answer"])
	assert.NotContains(t, fields, "sequence")
}
