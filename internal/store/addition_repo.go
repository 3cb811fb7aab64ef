package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathfacts/internal/facts"
)

var additionColumnNames = columnNames(AdditionFactRecordsColumns)

func (s *Store) selectAdditions() *entsql.Selector {
	return entsql.Dialect(s.dialect).
		Select(additionColumnNames...).
		From(entsql.Table(additionRecordsTable))
}

func (s *Store) GetAdditionFact(ctx context.Context, userID, factKey string) (*facts.AdditionRecord, error) {
	query, args := s.selectAdditions().
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("fact_key", factKey))).
		Query()

	r, err := scanAdditionRecord(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query addition fact %s/%s: %w", userID, factKey, err)
	}
	return &r, nil
}

func (s *Store) BulkGetAdditionFacts(ctx context.Context, userID string, factKeys []string) (map[string]facts.AdditionRecord, error) {
	out := make(map[string]facts.AdditionRecord, len(factKeys))
	if len(factKeys) == 0 {
		return out, nil
	}

	keys := make([]any, len(factKeys))
	for i, k := range factKeys {
		keys[i] = k
	}
	query, args := s.selectAdditions().
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.In("fact_key", keys...))).
		Query()

	records, err := s.queryAdditions(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("bulk query addition facts: %w", err)
	}
	for _, r := range records {
		out[r.FactKey] = r
	}
	return out, nil
}

func (s *Store) UpsertAdditionFacts(ctx context.Context, recs []facts.AdditionRecord) error {
	if len(recs) == 0 {
		return nil
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(recs); start += upsertBatchSize {
			batch := recs[start:min(start+upsertBatchSize, len(recs))]

			ins := entsql.Dialect(s.dialect).
				Insert(additionRecordsTable).
				Columns(additionColumnNames...)
			for _, r := range batch {
				ins.Values(additionRecordValues(r)...)
			}
			ins.OnConflict(
				entsql.ConflictColumns("user_id", "fact_key"),
				entsql.ResolveWith(updateExcept(additionColumnNames, "id", "user_id", "fact_key", "created_at")),
			)

			query, args := ins.Query()
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("upsert %d addition facts: %w", len(batch), err)
			}
		}
		return nil
	})
}

func (s *Store) QueryAdditionFacts(ctx context.Context, userID string, q AdditionQuery) ([]facts.AdditionRecord, error) {
	where := entsql.EQ("user_id", userID)
	if q.Level != "" {
		where = entsql.And(where, entsql.EQ("mastery_level", string(q.Level)))
	}

	sel := s.selectAdditions().
		Where(where).
		OrderExpr(entsql.Expr("CASE WHEN last_attempted IS NULL THEN 1 ELSE 0 END")).
		OrderBy(entsql.Desc("last_attempted"), entsql.Asc("fact_key"))
	if q.Limit > 0 {
		sel.Limit(q.Limit)
	}

	query, args := sel.Query()
	records, err := s.queryAdditions(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query addition facts: %w", err)
	}
	return records, nil
}

func (s *Store) queryAdditions(ctx context.Context, query string, args []any) ([]facts.AdditionRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []facts.AdditionRecord
	for rows.Next() {
		r, err := scanAdditionRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan addition record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
