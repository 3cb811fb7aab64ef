package spacedrep

import "fmt"

// Grade is the SM-2 quality of a single review, 0 (blackout) to 5 (perfect).
type Grade int

const (
	GradeBlackout      Grade = 0 // 2+ wrong tries
	GradeFamiliarSlow  Grade = 1 // one wrong try, then slow
	GradeEasyAfterMiss Grade = 2 // one wrong try, then quick
	GradeEffortful     Grade = 3 // first try, slow
	GradeHesitant      Grade = 4 // first try, some hesitation
	GradePerfect       Grade = 5 // first try, fast
)

// PassingGrade is the lowest grade that counts as a successful recall.
const PassingGrade = GradeEffortful

// Valid reports whether g is within [0, 5].
func (g Grade) Valid() bool {
	return g >= GradeBlackout && g <= GradePerfect
}

// Passing reports whether g advances the repetition counter.
func (g Grade) Passing() bool {
	return g >= PassingGrade
}

func (g Grade) String() string {
	switch g {
	case GradeBlackout:
		return "blackout"
	case GradeFamiliarSlow:
		return "familiar-slow"
	case GradeEasyAfterMiss:
		return "easy-after-miss"
	case GradeEffortful:
		return "effortful"
	case GradeHesitant:
		return "hesitant"
	case GradePerfect:
		return "perfect"
	}
	return fmt.Sprintf("grade(%d)", int(g))
}

// CalculateGrade maps a response time and the number of wrong tries that
// preceded it on the current problem to an SM-2 grade. Negative inputs are
// treated as zero.
func CalculateGrade(responseTimeMs int64, incorrectAttempts int) Grade {
	if responseTimeMs < 0 {
		responseTimeMs = 0
	}

	switch {
	case incorrectAttempts >= 2:
		return GradeBlackout
	case incorrectAttempts == 1:
		if responseTimeMs < SlowResponseMs {
			return GradeEasyAfterMiss
		}
		return GradeFamiliarSlow
	}

	switch {
	case responseTimeMs < FastResponseMs:
		return GradePerfect
	case responseTimeMs < SlowResponseMs:
		return GradeHesitant
	default:
		return GradeEffortful
	}
}
