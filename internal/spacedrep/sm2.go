package spacedrep

import (
	"math"
	"time"
)

// Apply runs one SM-2 step and returns the updated schedule. The input is
// never modified; on an invalid grade it is returned unchanged together with
// an *InvalidGradeError.
func Apply(s State, grade Grade, now time.Time) (State, error) {
	if !grade.Valid() {
		return s, &InvalidGradeError{Grade: int(grade)}
	}

	oldEF := ClampEasiness(s.EasinessFactor)
	next := State{
		RepetitionNumber: s.RepetitionNumber,
		IntervalDays:     max(s.IntervalDays, FirstIntervalDays),
	}

	if !grade.Passing() {
		next.RepetitionNumber = 0
		next.IntervalDays = FirstIntervalDays
	} else {
		switch next.RepetitionNumber {
		case 0:
			next.IntervalDays = FirstIntervalDays
		case 1:
			next.IntervalDays = SecondIntervalDays
		default:
			next.IntervalDays = scaleInterval(next.IntervalDays, oldEF)
		}
		next.RepetitionNumber++
	}

	next.EasinessFactor = UpdateEasiness(oldEF, grade)

	due := now.AddDate(0, 0, next.IntervalDays)
	next.NextReviewDate = &due
	return next, nil
}

// UpdateEasiness applies the SM-2 easiness formula for grade, clamps the
// result to [MinEasinessFactor, MaxEasinessFactor] and rounds it to two
// decimal places.
func UpdateEasiness(ef float64, grade Grade) float64 {
	q := float64(GradePerfect - grade)
	updated := ef + (0.1 - q*(0.08+q*0.02))
	return RoundEasiness(ClampEasiness(updated))
}

// ClampEasiness bounds ef to [MinEasinessFactor, MaxEasinessFactor].
func ClampEasiness(ef float64) float64 {
	if math.IsNaN(ef) || ef < MinEasinessFactor {
		return MinEasinessFactor
	}
	if ef > MaxEasinessFactor {
		return MaxEasinessFactor
	}
	return ef
}

// RoundEasiness rounds ef to two decimal places.
func RoundEasiness(ef float64) float64 {
	return math.Round(ef*100) / 100
}

// scaleInterval computes floor(interval * ef) in hundredths so that values
// like 10 * 2.3 truncate to 23 rather than 22.
func scaleInterval(interval int, ef float64) int {
	hundredths := int64(math.Round(ef * 100))
	days := int64(interval) * hundredths / 100
	switch {
	case days < FirstIntervalDays:
		return FirstIntervalDays
	case days > MaxIntervalDays:
		return MaxIntervalDays
	}
	return int(days)
}
