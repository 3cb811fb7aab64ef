package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out the global monotonic sequence numbers that order
// the attempt log. Attempts may share a timestamp, so the sequence is the
// only reliable order across sessions and processes.
//
// The increment is a single UPDATE ... RETURNING inside the caller's
// transaction, so a rolled-back write also gives its numbers back. The mutex
// serializes within the process.
type sequenceCounter struct {
	mu      sync.Mutex
	dialect string
}

// seed creates the counter row if it doesn't exist yet.
func (sc *sequenceCounter) seed(ctx context.Context, db *sql.DB) error {
	query, args := entsql.Dialect(sc.dialect).
		Insert(sequenceTable).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed sequence: %w", err)
	}
	return nil
}

// Reserve atomically claims n consecutive sequence numbers and returns the
// first.
func (sc *sequenceCounter) Reserve(ctx context.Context, tx *sql.Tx, n int) (int64, error) {
	if n < 1 {
		return 0, fmt.Errorf("reserve %d sequence numbers: count must be positive", n)
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()

	var first int64
	err := tx.QueryRowContext(ctx,
		fmt.Sprintf(`UPDATE %s SET next_val = next_val + %d WHERE id = 1 RETURNING next_val - %d`, sequenceTable, n, n),
	).Scan(&first)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return first, nil
}
