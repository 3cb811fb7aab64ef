package facts

import (
	"time"

	"github.com/abhisek/mathfacts/internal/mastery"
)

// AdditionRecord tracks a fact in table-practice mode: the same statistics
// as Record, classified into a mastery level instead of SM-2 scheduling.
type AdditionRecord struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	FactKey string `json:"fact_key"`

	mastery.Stats

	Level     mastery.Level `json:"mastery_level"`
	CreatedAt *time.Time    `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at"`
}

// NewAdditionRecord creates an untouched table-practice record.
func NewAdditionRecord(key Key, id string, now time.Time) AdditionRecord {
	created := now
	return AdditionRecord{
		ID:        id,
		UserID:    key.UserID,
		FactKey:   key.FactKey(),
		Level:     mastery.LevelLearning,
		CreatedAt: &created,
	}
}

// Track folds one attempt into the record and reclassifies its level.
func (r AdditionRecord) Track(correct bool, responseTimeMs int64, at time.Time) AdditionRecord {
	next := r
	next.Stats = r.Stats.Record(correct, responseTimeMs, at)
	next.Level = mastery.Classify(next.Stats)
	next.CreatedAt = cloneTime(r.CreatedAt)
	next.UpdatedAt = cloneTime(r.UpdatedAt)
	return next
}

// Key returns the structured key of the record.
func (r AdditionRecord) Key() (Key, error) {
	return KeyOf(r.UserID, r.FactKey)
}
