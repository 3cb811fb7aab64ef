package store

import (
	"context"
	"time"

	"github.com/abhisek/mathfacts/internal/facts"
	"github.com/abhisek/mathfacts/internal/mastery"
)

// FactStore reads and writes SM-2 fact records and the attempt log.
// Get and BulkGet report missing records by omission, never as an error.
type FactStore interface {
	// Get returns the record for (userID, factKey), or nil if none exists.
	Get(ctx context.Context, userID, factKey string) (*facts.Record, error)

	// BulkGet returns the existing records among factKeys, keyed by fact key.
	BulkGet(ctx context.Context, userID string, factKeys []string) (map[string]facts.Record, error)

	// Upsert inserts or replaces a record, keyed by (user_id, fact_key).
	Upsert(ctx context.Context, rec facts.Record) error

	// BulkUpsert upserts many records in one transaction.
	BulkUpsert(ctx context.Context, recs []facts.Record) error

	// InsertAttempt appends to the attempt log.
	InsertAttempt(ctx context.Context, a facts.Attempt) error

	// QueryDue returns records due at now, never-scheduled first, then by
	// ascending next review date and fact key. limit <= 0 means no limit.
	QueryDue(ctx context.Context, userID string, now time.Time, limit int) ([]facts.Record, error)

	// QueryByEasinessAscending returns records hardest first.
	QueryByEasinessAscending(ctx context.Context, userID string, limit int) ([]facts.Record, error)

	// QueryAll returns every record of the learner ordered by fact key.
	QueryAll(ctx context.Context, userID string) ([]facts.Record, error)

	// ListAttempts returns logged attempts, newest first.
	ListAttempts(ctx context.Context, userID string, q AttemptQuery) ([]facts.Attempt, error)
}

// AtomicFactStore writes schedule updates and their attempt log entries in
// a single transaction.
type AtomicFactStore interface {
	FactStore

	// SaveAttempt upserts rec and appends a together.
	SaveAttempt(ctx context.Context, rec facts.Record, a facts.Attempt) error

	// SaveSession upserts recs and appends attempts together.
	SaveSession(ctx context.Context, recs []facts.Record, attempts []facts.Attempt) error
}

// AdditionStore reads and writes table-practice records.
type AdditionStore interface {
	GetAdditionFact(ctx context.Context, userID, factKey string) (*facts.AdditionRecord, error)
	BulkGetAdditionFacts(ctx context.Context, userID string, factKeys []string) (map[string]facts.AdditionRecord, error)
	UpsertAdditionFacts(ctx context.Context, recs []facts.AdditionRecord) error
	QueryAdditionFacts(ctx context.Context, userID string, q AdditionQuery) ([]facts.AdditionRecord, error)
}

// AttemptQuery filters the attempt log.
type AttemptQuery struct {
	FactKey string // only this fact ("" = all facts)
	Limit   int    // max results (0 = unlimited)
}

// AdditionQuery filters table-practice records. Results are ordered by
// most recent attempt first.
type AdditionQuery struct {
	Level mastery.Level // only this level ("" = all levels)
	Limit int           // max results (0 = unlimited)
}
