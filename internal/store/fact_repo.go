package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathfacts/internal/facts"
)

// upsertBatchSize bounds rows per INSERT to stay under SQLite's variable limit.
const upsertBatchSize = 200

var factRecordColumnNames = columnNames(FactRecordsColumns)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) selectFacts() *entsql.Selector {
	return entsql.Dialect(s.dialect).
		Select(factRecordColumnNames...).
		From(entsql.Table(factRecordsTable))
}

func (s *Store) Get(ctx context.Context, userID, factKey string) (*facts.Record, error) {
	query, args := s.selectFacts().
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("fact_key", factKey))).
		Query()

	r, err := scanFactRecord(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query fact %s/%s: %w", userID, factKey, err)
	}
	return &r, nil
}

func (s *Store) BulkGet(ctx context.Context, userID string, factKeys []string) (map[string]facts.Record, error) {
	out := make(map[string]facts.Record, len(factKeys))
	if len(factKeys) == 0 {
		return out, nil
	}

	keys := make([]any, len(factKeys))
	for i, k := range factKeys {
		keys[i] = k
	}
	query, args := s.selectFacts().
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.In("fact_key", keys...))).
		Query()

	records, err := s.queryFacts(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("bulk query facts: %w", err)
	}
	for _, r := range records {
		out[r.FactKey] = r
	}
	return out, nil
}

func (s *Store) Upsert(ctx context.Context, rec facts.Record) error {
	return s.BulkUpsert(ctx, []facts.Record{rec})
}

func (s *Store) BulkUpsert(ctx context.Context, recs []facts.Record) error {
	if len(recs) == 0 {
		return nil
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return s.upsertFacts(ctx, tx, recs)
	})
}

func (s *Store) upsertFacts(ctx context.Context, ex execer, recs []facts.Record) error {
	for start := 0; start < len(recs); start += upsertBatchSize {
		batch := recs[start:min(start+upsertBatchSize, len(recs))]

		ins := entsql.Dialect(s.dialect).
			Insert(factRecordsTable).
			Columns(factRecordColumnNames...)
		for _, r := range batch {
			ins.Values(factRecordValues(r)...)
		}
		ins.OnConflict(
			entsql.ConflictColumns("user_id", "fact_key"),
			entsql.ResolveWith(updateExcept(factRecordColumnNames, "id", "user_id", "fact_key", "created_at")),
		)

		query, args := ins.Query()
		if _, err := ex.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert %d fact records: %w", len(batch), err)
		}
	}
	return nil
}

func (s *Store) QueryDue(ctx context.Context, userID string, now time.Time, limit int) ([]facts.Record, error) {
	sel := s.selectFacts().
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.Or(entsql.IsNull("next_review_date"), entsql.LTE("next_review_date", now.UTC())),
		)).
		OrderExpr(entsql.Expr("CASE WHEN next_review_date IS NULL THEN 0 ELSE 1 END")).
		OrderBy(entsql.Asc("next_review_date"), entsql.Asc("fact_key"))
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	records, err := s.queryFacts(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query due facts: %w", err)
	}
	return records, nil
}

func (s *Store) QueryByEasinessAscending(ctx context.Context, userID string, limit int) ([]facts.Record, error) {
	sel := s.selectFacts().
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Asc("easiness_factor"), entsql.Asc("fact_key"))
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	records, err := s.queryFacts(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query facts by easiness: %w", err)
	}
	return records, nil
}

func (s *Store) QueryAll(ctx context.Context, userID string) ([]facts.Record, error) {
	query, args := s.selectFacts().
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Asc("fact_key")).
		Query()

	records, err := s.queryFacts(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query all facts: %w", err)
	}
	return records, nil
}

// Users returns every learner with at least one SM-2 fact record.
func (s *Store) Users(ctx context.Context) ([]string, error) {
	query, args := entsql.Dialect(s.dialect).
		Select("user_id").
		Distinct().
		From(entsql.Table(factRecordsTable)).
		OrderBy("user_id").
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) queryFacts(ctx context.Context, query string, args []any) ([]facts.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []facts.Record
	for rows.Next() {
		r, err := scanFactRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fact record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// updateExcept builds an ON CONFLICT resolver that overwrites every column
// with the proposed value except the listed ones.
func updateExcept(columns []string, keep ...string) func(*entsql.UpdateSet) {
	return func(u *entsql.UpdateSet) {
		for _, c := range columns {
			if !contains(keep, c) {
				u.SetExcluded(c)
			}
		}
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
