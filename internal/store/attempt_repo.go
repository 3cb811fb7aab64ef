package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathfacts/internal/facts"
)

var attemptColumnNames = columnNames(AttemptRecordsColumns)

func (s *Store) InsertAttempt(ctx context.Context, a facts.Attempt) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return s.appendAttempts(ctx, tx, []facts.Attempt{a})
	})
}

func (s *Store) SaveAttempt(ctx context.Context, rec facts.Record, a facts.Attempt) error {
	return s.SaveSession(ctx, []facts.Record{rec}, []facts.Attempt{a})
}

func (s *Store) SaveSession(ctx context.Context, recs []facts.Record, attempts []facts.Attempt) error {
	if len(recs) == 0 && len(attempts) == 0 {
		return nil
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.upsertFacts(ctx, tx, recs); err != nil {
			return err
		}
		return s.appendAttempts(ctx, tx, attempts)
	})
}

// appendAttempts assigns consecutive sequence numbers in input order and
// inserts the attempts.
func (s *Store) appendAttempts(ctx context.Context, tx *sql.Tx, attempts []facts.Attempt) error {
	if len(attempts) == 0 {
		return nil
	}

	first, err := s.seq.Reserve(ctx, tx, len(attempts))
	if err != nil {
		return err
	}

	for start := 0; start < len(attempts); start += upsertBatchSize {
		batch := attempts[start:min(start+upsertBatchSize, len(attempts))]

		ins := entsql.Dialect(s.dialect).
			Insert(attemptRecordsTable).
			Columns(attemptColumnNames...)
		for i, a := range batch {
			a.Sequence = first + int64(start+i)
			ins.Values(attemptValues(a)...)
		}

		query, args := ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %d attempts: %w", len(batch), err)
		}
	}
	return nil
}

func (s *Store) ListAttempts(ctx context.Context, userID string, q AttemptQuery) ([]facts.Attempt, error) {
	where := entsql.EQ("user_id", userID)
	if q.FactKey != "" {
		where = entsql.And(where, entsql.EQ("fact_key", q.FactKey))
	}

	sel := entsql.Dialect(s.dialect).
		Select(attemptColumnNames...).
		From(entsql.Table(attemptRecordsTable)).
		Where(where).
		OrderBy(entsql.Desc("sequence"))
	if q.Limit > 0 {
		sel.Limit(q.Limit)
	}

	query, args := sel.Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []facts.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
