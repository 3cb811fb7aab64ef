package mastery

import "time"

// Stats holds the running performance statistics of a single fact.
// Response-time fields only ever reflect correct attempts.
type Stats struct {
	TotalAttempts       int        `json:"total_attempts"`
	CorrectAttempts     int        `json:"correct_attempts"`
	TotalResponseTimeMs int64      `json:"total_response_time_ms"`
	FastestResponseMs   *int64     `json:"fastest_response_ms"`
	SlowestResponseMs   *int64     `json:"slowest_response_ms"`
	LastAttempted       *time.Time `json:"last_attempted"`
}

// Accuracy returns the percentage of correct attempts (0-100).
func (s Stats) Accuracy() float64 {
	if s.TotalAttempts == 0 {
		return 0.0
	}
	return float64(s.CorrectAttempts) / float64(s.TotalAttempts) * 100
}

// AverageResponseTimeMs returns the mean response time of correct attempts.
func (s Stats) AverageResponseTimeMs() float64 {
	if s.CorrectAttempts == 0 {
		return 0.0
	}
	return float64(s.TotalResponseTimeMs) / float64(s.CorrectAttempts)
}

// AverageResponseTimeSeconds is AverageResponseTimeMs in seconds.
func (s Stats) AverageResponseTimeSeconds() float64 {
	return s.AverageResponseTimeMs() / 1000
}

// Record folds one attempt into the statistics and returns the result.
// The receiver is left untouched and the result shares no pointers with it.
func (s Stats) Record(correct bool, responseTimeMs int64, at time.Time) Stats {
	next := s.Clone()
	next.TotalAttempts++
	next.LastAttempted = &at

	if !correct {
		return next
	}

	next.CorrectAttempts++
	next.TotalResponseTimeMs += responseTimeMs
	if next.FastestResponseMs == nil || responseTimeMs < *next.FastestResponseMs {
		next.FastestResponseMs = int64Ptr(responseTimeMs)
	}
	if next.SlowestResponseMs == nil || responseTimeMs > *next.SlowestResponseMs {
		next.SlowestResponseMs = int64Ptr(responseTimeMs)
	}
	return next
}

// Clone returns a deep copy of s.
func (s Stats) Clone() Stats {
	c := s
	if s.FastestResponseMs != nil {
		c.FastestResponseMs = int64Ptr(*s.FastestResponseMs)
	}
	if s.SlowestResponseMs != nil {
		c.SlowestResponseMs = int64Ptr(*s.SlowestResponseMs)
	}
	if s.LastAttempted != nil {
		t := *s.LastAttempted
		c.LastAttempted = &t
	}
	return c
}

func int64Ptr(v int64) *int64 { return &v }
