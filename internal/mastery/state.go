package mastery

import (
	"fmt"
	"strings"
)

// Level is the coarse mastery tier of a fact in table-practice mode.
type Level string

const (
	LevelLearning   Level = "learning"
	LevelPracticing Level = "practicing"
	LevelMastered   Level = "mastered"
)

// Levels lists every level from weakest to strongest.
var Levels = []Level{LevelLearning, LevelPracticing, LevelMastered}

// Classification thresholds.
const (
	MinAttemptsToPractice = 5
	MinAttemptsToMaster   = 10
	PracticingAccuracy    = 80.0
	MasteredAccuracy      = 95.0
)

func (l Level) String() string {
	return string(l)
}

// ParseLevel converts a stored level name (any case) to a Level.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range Levels {
		if l == valid {
			return l, nil
		}
	}
	return "", fmt.Errorf("invalid mastery level %q: must be one of %v", s, Levels)
}

// Classify derives the mastery level from accumulated statistics:
// fewer than 5 attempts is always learning; 95%+ over 10+ attempts is
// mastered; 80%+ is practicing; anything else is learning.
func Classify(s Stats) Level {
	if s.TotalAttempts < MinAttemptsToPractice {
		return LevelLearning
	}

	accuracy := s.Accuracy()
	switch {
	case accuracy >= MasteredAccuracy && s.TotalAttempts >= MinAttemptsToMaster:
		return LevelMastered
	case accuracy >= PracticingAccuracy:
		return LevelPracticing
	default:
		return LevelLearning
	}
}

// Transition records a level change for a fact.
type Transition struct {
	FactKey string `json:"fact_key"`
	From    Level  `json:"from"`
	To      Level  `json:"to"`
}

// Improved reports whether the transition moved to a stronger level.
func (t Transition) Improved() bool {
	return rank(t.To) > rank(t.From)
}

func rank(l Level) int {
	for i, v := range Levels {
		if v == l {
			return i
		}
	}
	return -1
}
