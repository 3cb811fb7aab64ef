package spacedrep

import "time"

// State holds the SM-2 schedule for a single fact.
type State struct {
	RepetitionNumber int        `json:"repetition_number"`
	EasinessFactor   float64    `json:"easiness_factor"`
	IntervalDays     int        `json:"interval_days"`
	NextReviewDate   *time.Time `json:"next_review_date"`
}

// NewState returns the schedule of a fact seen for the first time: default
// easiness, a one-day interval, and a review due tomorrow.
func NewState(now time.Time) State {
	next := now.AddDate(0, 0, FirstIntervalDays)
	return State{
		RepetitionNumber: 0,
		EasinessFactor:   DefaultEasinessFactor,
		IntervalDays:     FirstIntervalDays,
		NextReviewDate:   &next,
	}
}

// IsDue returns true if the fact was never scheduled or its review date
// has arrived.
func (s State) IsDue(now time.Time) bool {
	if s.NextReviewDate == nil {
		return true
	}
	return !now.Before(*s.NextReviewDate)
}

// OverdueDays returns how many days past due the fact is. Returns 0 if not
// yet due or never scheduled.
func (s State) OverdueDays(now time.Time) float64 {
	if s.NextReviewDate == nil || now.Before(*s.NextReviewDate) {
		return 0
	}
	return now.Sub(*s.NextReviewDate).Hours() / 24.0
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func (s State) DaysUntilReview(now time.Time) int {
	if s.IsDue(now) {
		return 0
	}
	return int(s.NextReviewDate.Sub(now).Hours()/24.0) + 1
}
