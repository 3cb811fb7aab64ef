package store

import (
	"context"
	"testing"
)

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	reserve := func(n int) int64 {
		t.Helper()
		tx, err := s.DB().BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("begin: %v", err)
		}
		first, err := s.seq.Reserve(ctx, tx, n)
		if err != nil {
			t.Fatalf("reserve %d: %v", n, err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("commit: %v", err)
		}
		return first
	}

	// Should be monotonically increasing starting from 1.
	for i, tt := range []struct {
		n    int
		want int64
	}{{1, 1}, {3, 2}, {1, 5}} {
		if got := reserve(tt.n); got != tt.want {
			t.Errorf("reserve #%d (%d) = %d, want %d", i, tt.n, got, tt.want)
		}
	}
}

func TestSequenceCounter_RollbackReturnsNumbers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tx, err := s.DB().BeginTx(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.seq.Reserve(ctx, tx, 5); err != nil {
		t.Fatal(err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatal(err)
	}

	tx, err = s.DB().BeginTx(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer tx.Rollback()
	first, err := s.seq.Reserve(ctx, tx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if first != 1 {
		t.Errorf("first after rollback = %d, want 1", first)
	}
}

func TestSequenceCounter_RejectsNonPositive(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.seq.Reserve(context.Background(), nil, 0); err == nil {
		t.Error("Reserve(0) should fail")
	}
}
