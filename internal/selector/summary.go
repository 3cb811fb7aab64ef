package selector

import (
	"time"

	"github.com/abhisek/mathfacts/internal/facts"
	"github.com/abhisek/mathfacts/internal/spacedrep"
)

// PerformanceSummary aggregates a learner's SM-2 fact records.
type PerformanceSummary struct {
	TotalFacts    int `json:"total_facts"`
	DueCount      int `json:"due_count"`
	TotalAttempts int `json:"total_attempts"`
	TotalCorrect  int `json:"total_correct"`

	// MeanFactAccuracy averages per-fact accuracy over every fact; facts
	// with no attempts count as 0.
	MeanFactAccuracy float64 `json:"mean_fact_accuracy"`
	// MeanAttemptedFactAccuracy averages per-fact accuracy over facts with
	// at least one attempt.
	MeanAttemptedFactAccuracy float64 `json:"mean_attempted_fact_accuracy"`
	// OverallAccuracy is TotalCorrect / TotalAttempts as a percentage.
	OverallAccuracy float64 `json:"overall_accuracy"`

	MeanEasinessFactor float64     `json:"mean_easiness_factor"`
	IntervalHistogram  map[int]int `json:"interval_histogram"`
}

// Summarize computes the performance summary of records at now.
func Summarize(records []facts.Record, now time.Time) PerformanceSummary {
	sum := PerformanceSummary{
		TotalFacts:         len(records),
		MeanEasinessFactor: spacedrep.DefaultEasinessFactor,
		IntervalHistogram:  make(map[int]int),
	}
	if len(records) == 0 {
		return sum
	}

	var accuracySum, attemptedAccuracySum, efSum float64
	attempted := 0
	for _, r := range records {
		if r.IsDueForReview(now) {
			sum.DueCount++
		}
		sum.TotalAttempts += r.TotalAttempts
		sum.TotalCorrect += r.CorrectAttempts
		accuracySum += r.Accuracy()
		if r.TotalAttempts > 0 {
			attempted++
			attemptedAccuracySum += r.Accuracy()
		}
		efSum += r.EasinessFactor
		sum.IntervalHistogram[r.IntervalDays]++
	}

	sum.MeanFactAccuracy = accuracySum / float64(len(records))
	if attempted > 0 {
		sum.MeanAttemptedFactAccuracy = attemptedAccuracySum / float64(attempted)
	}
	if sum.TotalAttempts > 0 {
		sum.OverallAccuracy = float64(sum.TotalCorrect) / float64(sum.TotalAttempts) * 100
	}
	sum.MeanEasinessFactor = efSum / float64(len(records))
	return sum
}
