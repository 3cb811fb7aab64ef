// Package selector picks facts out of a learner's records: due reviews,
// weak facts, and table-practice facts by mastery. Every function is pure
// over the slice it is given and never mutates it.
package selector

import (
	"sort"
	"time"

	"github.com/abhisek/mathfacts/internal/facts"
)

// DueForReview returns the records due at now, oldest review date first.
// Records never scheduled sort before everything else; ties are broken by
// fact key. A limit <= 0 returns every due record.
func DueForReview(records []facts.Record, now time.Time, limit int) []facts.Record {
	var due []facts.Record
	for _, r := range records {
		if r.IsDueForReview(now) {
			due = append(due, r)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i].NextReviewDate, due[j].NextReviewDate
		switch {
		case a == nil && b == nil:
			return due[i].FactKey < due[j].FactKey
		case a == nil:
			return true
		case b == nil:
			return false
		case !a.Equal(*b):
			return a.Before(*b)
		}
		return due[i].FactKey < due[j].FactKey
	})
	return truncate(due, limit)
}

// ByEasiness returns the records ordered by ascending easiness factor,
// ties broken by fact key. A limit <= 0 returns every record.
func ByEasiness(records []facts.Record, limit int) []facts.Record {
	sorted := make([]facts.Record, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].EasinessFactor != sorted[j].EasinessFactor {
			return sorted[i].EasinessFactor < sorted[j].EasinessFactor
		}
		return sorted[i].FactKey < sorted[j].FactKey
	})
	return truncate(sorted, limit)
}

// WeakFacts merges due reviews with the lowest-easiness facts: due records
// come first in their given order, then hardest facts fill the remainder.
// No fact appears twice and the result never exceeds limit.
func WeakFacts(due, byEasiness []facts.Record, limit int) []facts.Record {
	if limit <= 0 {
		return nil
	}

	seen := make(map[string]bool, limit)
	weak := make([]facts.Record, 0, limit)
	for _, list := range [][]facts.Record{due, byEasiness} {
		for _, r := range list {
			if len(weak) == limit {
				return weak
			}
			if seen[r.FactKey] {
				continue
			}
			seen[r.FactKey] = true
			weak = append(weak, r)
		}
	}
	return weak
}

func truncate[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
