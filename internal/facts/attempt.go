package facts

import (
	"time"

	"github.com/abhisek/mathfacts/internal/spacedrep"
)

// Attempt is one immutable entry of the attempt log.
type Attempt struct {
	ID string `json:"id"`
	// Sequence is assigned by the store and orders attempts globally.
	Sequence int64 `json:"sequence,omitempty"`

	UserID                     string          `json:"user_id"`
	FactKey                    string          `json:"fact_key"`
	Operand1                   int             `json:"operand1"`
	Operand2                   int             `json:"operand2"`
	UserAnswer                 *int            `json:"user_answer"`
	CorrectAnswer              int             `json:"correct_answer"`
	IsCorrect                  bool            `json:"is_correct"`
	ResponseTimeMs             int64           `json:"response_time_ms"`
	IncorrectAttemptsInSession int             `json:"incorrect_attempts_in_session"`
	Grade                      spacedrep.Grade `json:"sm2_grade"`
	AttemptedAt                time.Time       `json:"attempted_at"`
}

// Skipped reports whether the learner gave no answer.
func (a Attempt) Skipped() bool {
	return a.UserAnswer == nil
}

// ResponseTimeSeconds returns the response time in seconds.
func (a Attempt) ResponseTimeSeconds() float64 {
	return float64(a.ResponseTimeMs) / 1000
}
