package tracker

import (
	"errors"
	"fmt"

	"github.com/abhisek/mathfacts/internal/session"
)

// ErrStore matches every *StoreError.
var ErrStore = errors.New("fact store failure")

// StoreError reports a failed fact store operation. The engine never
// retries; callers decide whether to retry or degrade.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("fact store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStore }

// InvalidAttemptError reports attempt input outside its allowed range.
type InvalidAttemptError = session.InvalidAttemptError

// ErrInvalidAttempt matches every *InvalidAttemptError.
var ErrInvalidAttempt = session.ErrInvalidAttempt
