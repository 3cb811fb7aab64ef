// Package reminder scans learners for facts due for review, once or on a
// fixed schedule.
package reminder

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/mathfacts/internal/tracker"
)

// DueLister lists a learner's due facts; *tracker.Service implements it.
type DueLister interface {
	GetFactsDueForReview(ctx context.Context, userID string, limit int) (tracker.DueReviewList, error)
}

// Result is the outcome of scanning one learner.
type Result struct {
	UserID string
	Due    int
	Err    error
}

// Check counts due facts for every user with at most concurrency scans in
// flight. Per-user failures are reported in the matching Result; the
// returned error is only set when ctx is done. Results follow users order.
func Check(ctx context.Context, dl DueLister, users []string, concurrency int) ([]Result, error) {
	results := make([]Result, len(users))

	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, userID := range users {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			list, err := dl.GetFactsDueForReview(gctx, userID, 0)
			results[i] = Result{UserID: userID, Due: len(list.Facts), Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
