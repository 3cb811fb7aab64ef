package facts

import (
	"testing"
	"time"

	"github.com/abhisek/mathfacts/internal/mastery"
)

func TestAdditionRecord_TrackReclassifies(t *testing.T) {
	r := NewAdditionRecord(NewKey("u1", 4, 5), "id-1", now)
	if r.Level != mastery.LevelLearning {
		t.Fatalf("initial level = %q, want learning", r.Level)
	}

	for i := range 10 {
		r = r.Track(true, 1200, now.Add(time.Duration(i)*time.Minute))
	}
	if r.Level != mastery.LevelMastered {
		t.Errorf("after 10 correct: level = %q, want mastered", r.Level)
	}

	r = r.Track(false, 5000, now.Add(time.Hour))
	// 10/11 = 90.9%
	if r.Level != mastery.LevelPracticing {
		t.Errorf("after a miss: level = %q, want practicing", r.Level)
	}
	if r.TotalResponseTimeMs != 12000 {
		t.Errorf("TotalResponseTimeMs = %d, want 12000", r.TotalResponseTimeMs)
	}
}

func TestAdditionRecord_TrackIsPure(t *testing.T) {
	r := NewAdditionRecord(NewKey("u1", 4, 5), "id-1", now)
	_ = r.Track(true, 1000, now)
	if r.TotalAttempts != 0 || r.LastAttempted != nil {
		t.Errorf("receiver mutated: %+v", r)
	}
}
