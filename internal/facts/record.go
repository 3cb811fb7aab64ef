package facts

import (
	"time"

	"github.com/abhisek/mathfacts/internal/mastery"
	"github.com/abhisek/mathfacts/internal/spacedrep"
)

// Record is the per-(user, fact) performance and SM-2 schedule record.
// Statistics and schedule fields are flattened when encoded to JSON.
type Record struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	FactKey string `json:"fact_key"`

	mastery.Stats
	spacedrep.State

	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// NewRecord creates the record for a fact seen for the first time, with SM-2
// defaults and a review due one day after now.
func NewRecord(key Key, id string, now time.Time) Record {
	created := now
	return Record{
		ID:        id,
		UserID:    key.UserID,
		FactKey:   key.FactKey(),
		State:     spacedrep.NewState(now),
		CreatedAt: &created,
	}
}

// Key returns the structured key of the record.
func (r Record) Key() (Key, error) {
	return KeyOf(r.UserID, r.FactKey)
}

// IsDueForReview reports whether the fact should be reviewed at now.
func (r Record) IsDueForReview(now time.Time) bool {
	return r.State.IsDue(now)
}

// Level classifies the record's statistics into a mastery level.
func (r Record) Level() mastery.Level {
	return mastery.Classify(r.Stats)
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	c := r
	c.Stats = r.Stats.Clone()
	c.NextReviewDate = cloneTime(r.NextReviewDate)
	c.CreatedAt = cloneTime(r.CreatedAt)
	c.UpdatedAt = cloneTime(r.UpdatedAt)
	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
