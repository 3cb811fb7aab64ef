package spacedrep

import (
	"errors"
	"fmt"
)

// ErrInvalidGrade is matched by every *InvalidGradeError.
var ErrInvalidGrade = errors.New("invalid SM-2 grade")

// InvalidGradeError reports a grade outside [0, 5].
type InvalidGradeError struct {
	Grade int
}

func (e *InvalidGradeError) Error() string {
	return fmt.Sprintf("grade must be between 0 and 5, got %d", e.Grade)
}

func (e *InvalidGradeError) Is(target error) bool {
	return target == ErrInvalidGrade
}
