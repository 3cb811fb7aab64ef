// Package session folds a learner's practice session into updated fact
// records, attempt log entries and a session summary.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/mathfacts/internal/facts"
)

// ErrInvalidAttempt matches every *InvalidAttemptError.
var ErrInvalidAttempt = errors.New("invalid attempt")

// InvalidAttemptError reports an attempt field outside its allowed range.
type InvalidAttemptError struct {
	Field string
	Value int64
}

func (e *InvalidAttemptError) Error() string {
	return fmt.Sprintf("invalid attempt: %s must not be negative (got %d)", e.Field, e.Value)
}

func (e *InvalidAttemptError) Is(target error) bool { return target == ErrInvalidAttempt }

// Attempt is one answer given during a session.
type Attempt struct {
	Operand1 int `json:"operand1"`
	Operand2 int `json:"operand2"`
	// UserAnswer is nil when no answer was given. A correct attempt without
	// an answer is recorded with the correct sum.
	UserAnswer     *int  `json:"user_answer,omitempty"`
	IsCorrect      bool  `json:"is_correct"`
	ResponseTimeMs int64 `json:"response_time_ms"`
	// IncorrectAttempts counts wrong tries on the same problem before this
	// answer.
	IncorrectAttempts int `json:"incorrect_attempts"`
	// AttemptedAt defaults to the time the session is processed.
	AttemptedAt *time.Time `json:"attempted_at,omitempty"`
}

// Key returns the fact key of the attempt for userID.
func (a Attempt) Key(userID string) facts.Key {
	return facts.NewKey(userID, a.Operand1, a.Operand2)
}

// Validate rejects negative response times and error counts.
func (a Attempt) Validate() error {
	if a.ResponseTimeMs < 0 {
		return &InvalidAttemptError{Field: "response_time_ms", Value: a.ResponseTimeMs}
	}
	if a.IncorrectAttempts < 0 {
		return &InvalidAttemptError{Field: "incorrect_attempts", Value: int64(a.IncorrectAttempts)}
	}
	return nil
}

func (a Attempt) timestamp(now time.Time) time.Time {
	if a.AttemptedAt == nil {
		return now
	}
	return a.AttemptedAt.UTC()
}

func (a Attempt) answer() *int {
	if a.UserAnswer != nil {
		v := *a.UserAnswer
		return &v
	}
	if a.IsCorrect {
		v := a.Operand1 + a.Operand2
		return &v
	}
	return nil
}
