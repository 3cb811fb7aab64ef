package session

import (
	"fmt"
	"time"

	"github.com/abhisek/mathfacts/internal/facts"
	"github.com/abhisek/mathfacts/internal/mastery"
	"github.com/abhisek/mathfacts/internal/spacedrep"
)

// Step applies a single attempt to a fact. rec is nil when the learner has
// never seen the fact. The returned record is a fresh value; rec is never
// modified. newID is called for the record (when created) and the attempt.
func Step(rec *facts.Record, userID string, a Attempt, now time.Time, newID func() string) (facts.Record, facts.Attempt, error) {
	if err := a.Validate(); err != nil {
		return facts.Record{}, facts.Attempt{}, err
	}

	key := a.Key(userID)
	var next facts.Record
	if rec == nil {
		next = facts.NewRecord(key, newID(), now)
	} else {
		next = rec.Clone()
	}

	at := a.timestamp(now)
	grade := spacedrep.CalculateGrade(a.ResponseTimeMs, a.IncorrectAttempts)

	next.Stats = next.Stats.Record(a.IsCorrect, a.ResponseTimeMs, at)
	state, err := spacedrep.Apply(next.State, grade, now)
	if err != nil {
		return facts.Record{}, facts.Attempt{}, fmt.Errorf("schedule %s: %w", key, err)
	}
	next.State = state
	updated := now
	next.UpdatedAt = &updated

	attempt := facts.Attempt{
		ID:                         newID(),
		UserID:                     userID,
		FactKey:                    key.FactKey(),
		Operand1:                   a.Operand1,
		Operand2:                   a.Operand2,
		UserAnswer:                 a.answer(),
		CorrectAnswer:              key.Sum(),
		IsCorrect:                  a.IsCorrect,
		ResponseTimeMs:             a.ResponseTimeMs,
		IncorrectAttemptsInSession: a.IncorrectAttempts,
		Grade:                      grade,
		AttemptedAt:                at,
	}
	return next, attempt, nil
}

// Summary describes one processed session.
type Summary struct {
	// Empty is set when the session had no attempts; every other field is
	// zero in that case.
	Empty bool `json:"empty"`

	Accuracy        float64 `json:"session_accuracy"`
	TotalAttempts   int     `json:"total_attempts"`
	CorrectAttempts int     `json:"correct_attempts"`

	// FactsPracticed lists distinct fact keys in first-seen order.
	FactsPracticed []string `json:"facts_practiced"`
	// NewFactsLearned lists facts attempted for the first time ever.
	NewFactsLearned []string `json:"new_facts_learned"`
	// FactsMastered lists facts whose mastery level became mastered.
	FactsMastered []string `json:"facts_mastered"`
	// FactsCleared lists facts that were due before the session and are
	// no longer due after it.
	FactsCleared []string `json:"facts_cleared"`
	// RemainingDue is the learner's due count after the session is saved.
	RemainingDue int `json:"facts_due_for_review"`

	// AverageResponseTimeMs averages every attempt, correct or not.
	AverageResponseTimeMs float64 `json:"average_response_time_ms"`
}

// Outcome is the result of folding a session.
type Outcome struct {
	// Records holds the final state of each practiced fact, in the order
	// of Summary.FactsPracticed.
	Records  []facts.Record
	Attempts []facts.Attempt
	Summary  Summary
}

type factProgress struct {
	record   facts.Record
	stored   bool
	wasNew   bool
	wasDue   bool
	levelWas mastery.Level
}

// Analyze folds attempts, in order, over the learner's existing records
// (keyed by fact key). Facts missing from existing are created. An empty
// session yields an Outcome with Summary.Empty set and no error.
func Analyze(userID string, existing map[string]facts.Record, attempts []Attempt, now time.Time, newID func() string) (*Outcome, error) {
	if len(attempts) == 0 {
		return &Outcome{Summary: Summary{Empty: true}}, nil
	}

	out := &Outcome{Attempts: make([]facts.Attempt, 0, len(attempts))}
	progress := make(map[string]*factProgress)
	var order []string
	var totalResponseMs int64

	for i, a := range attempts {
		key := a.Key(userID).FactKey()

		p, seen := progress[key]
		if !seen {
			p = &factProgress{wasNew: true, levelWas: mastery.LevelLearning}
			if rec, ok := existing[key]; ok {
				p.record = rec
				p.stored = true
				p.wasNew = rec.TotalAttempts == 0
				p.wasDue = rec.IsDueForReview(now)
				p.levelWas = rec.Level()
			}
			progress[key] = p
			order = append(order, key)
		}

		var cur *facts.Record
		if p.stored {
			cur = &p.record
		}
		next, logged, err := Step(cur, userID, a, now, newID)
		if err != nil {
			return nil, fmt.Errorf("attempt %d (%s): %w", i, key, err)
		}
		p.record = next
		p.stored = true
		out.Attempts = append(out.Attempts, logged)

		out.Summary.TotalAttempts++
		if a.IsCorrect {
			out.Summary.CorrectAttempts++
		}
		totalResponseMs += a.ResponseTimeMs
	}

	s := &out.Summary
	s.Accuracy = float64(s.CorrectAttempts) / float64(s.TotalAttempts) * 100
	s.AverageResponseTimeMs = float64(totalResponseMs) / float64(s.TotalAttempts)
	s.FactsPracticed = order

	for _, key := range order {
		p := progress[key]
		out.Records = append(out.Records, p.record)
		if p.wasNew {
			s.NewFactsLearned = append(s.NewFactsLearned, key)
		}
		if p.levelWas != mastery.LevelMastered && p.record.Level() == mastery.LevelMastered {
			s.FactsMastered = append(s.FactsMastered, key)
		}
		if p.wasDue && !p.record.IsDueForReview(now) {
			s.FactsCleared = append(s.FactsCleared, key)
		}
	}
	return out, nil
}
