package spacedrep

import (
	"testing"
	"time"
)

func ptr(t time.Time) *time.Time { return &t }

func TestNewState(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewState(now)
	if s.RepetitionNumber != 0 {
		t.Errorf("RepetitionNumber = %d, want 0", s.RepetitionNumber)
	}
	if s.EasinessFactor != 2.5 {
		t.Errorf("EasinessFactor = %v, want 2.5", s.EasinessFactor)
	}
	if s.IntervalDays != 1 {
		t.Errorf("IntervalDays = %d, want 1", s.IntervalDays)
	}
	if s.NextReviewDate == nil || !s.NextReviewDate.Equal(now.Add(24*time.Hour)) {
		t.Errorf("NextReviewDate = %v, want %v", s.NextReviewDate, now.Add(24*time.Hour))
	}
}

func TestIsDue_NeverScheduled(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	if !(State{}).IsDue(now) {
		t.Error("expected never-scheduled fact to be due")
	}
}

func TestIsDue_BeforeDate(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := State{NextReviewDate: ptr(now.Add(24 * time.Hour))}
	if s.IsDue(now) {
		t.Error("expected not due before review date")
	}
}

func TestIsDue_OnDate(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := State{NextReviewDate: ptr(now)}
	if !s.IsDue(now) {
		t.Error("expected due on review date")
	}
}

func TestIsDue_AfterDate(t *testing.T) {
	now := time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC)
	s := State{NextReviewDate: ptr(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))}
	if !s.IsDue(now) {
		t.Error("expected due after review date")
	}
}

func TestOverdueDays_NotDue(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := State{NextReviewDate: ptr(now.Add(48 * time.Hour))}
	if got := s.OverdueDays(now); got != 0 {
		t.Errorf("OverdueDays() = %f, want 0", got)
	}
}

func TestOverdueDays_NeverScheduled(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := (State{}).OverdueDays(now); got != 0 {
		t.Errorf("OverdueDays() = %f, want 0", got)
	}
}

func TestOverdueDays_ThreeDaysOverdue(t *testing.T) {
	reviewDate := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	now := reviewDate.Add(3 * 24 * time.Hour)
	s := State{NextReviewDate: ptr(reviewDate)}
	got := s.OverdueDays(now)
	if got < 2.99 || got > 3.01 {
		t.Errorf("OverdueDays() = %f, want ~3.0", got)
	}
}

func TestDaysUntilReview_FutureDue(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	// 4.5 days in the future -> int(4.5) + 1 = 5
	s := State{NextReviewDate: ptr(now.Add(108 * time.Hour))}
	if got := s.DaysUntilReview(now); got != 5 {
		t.Errorf("DaysUntilReview() = %d, want 5", got)
	}
}

func TestDaysUntilReview_AlreadyDue(t *testing.T) {
	now := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	s := State{NextReviewDate: ptr(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))}
	if got := s.DaysUntilReview(now); got != 0 {
		t.Errorf("DaysUntilReview() = %d, want 0", got)
	}
}
