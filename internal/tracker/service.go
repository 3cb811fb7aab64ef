// Package tracker is the caller-facing SM-2 engine: it records attempts,
// answers due/weak/summary queries and processes whole sessions against a
// fact store.
package tracker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/mathfacts/internal/facts"
	"github.com/abhisek/mathfacts/internal/selector"
	"github.com/abhisek/mathfacts/internal/session"
	"github.com/abhisek/mathfacts/internal/store"
)

// DefaultWeakLimit is used by GetWeakFacts when no positive limit is given.
const DefaultWeakLimit = 10

// Service tracks SM-2 fact performance for any number of learners.
type Service struct {
	store  store.FactStore
	clock  func() time.Time
	newID  func() string
	logger *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock. It is read once per operation.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithIDGenerator replaces the UUID generator for records and attempts.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger == nil {
			logger = zap.NewNop()
		}
		s.logger = logger
	}
}

// NewService creates a tracker backed by fs. When fs also implements
// store.AtomicFactStore, schedule and attempt log writes share a
// transaction.
func NewService(fs store.FactStore, opts ...Option) *Service {
	s := &Service{
		store:  fs,
		clock:  func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) now() time.Time {
	return s.clock().UTC()
}

// DueReviewList is the result of GetFactsDueForReview.
type DueReviewList struct {
	UserID string         `json:"user_id"`
	AsOf   time.Time      `json:"as_of"`
	Facts  []facts.Record `json:"facts"`
}

// WeakFactList is the result of GetWeakFacts.
type WeakFactList struct {
	UserID string         `json:"user_id"`
	AsOf   time.Time      `json:"as_of"`
	Facts  []facts.Record `json:"facts"`
	// DueCount is how many of Facts were included because they are due.
	DueCount int `json:"due_count"`
}

// TrackAttempt records one answer and returns the updated fact record.
// The schedule write is authoritative: without an atomic store, a failed
// attempt log write is logged and otherwise ignored.
func (s *Service) TrackAttempt(ctx context.Context, userID string, a session.Attempt) (*facts.Record, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	key := a.Key(userID)

	existing, err := s.store.Get(ctx, userID, key.FactKey())
	if err != nil {
		return nil, s.storeFailure("get", userID, key.FactKey(), err)
	}

	rec, attempt, err := session.Step(existing, userID, a, now, s.newID)
	if err != nil {
		return nil, err
	}

	if atomic, ok := s.store.(store.AtomicFactStore); ok {
		if err := atomic.SaveAttempt(ctx, rec, attempt); err != nil {
			return nil, s.storeFailure("save attempt", userID, rec.FactKey, err)
		}
		return &rec, nil
	}

	if err := s.store.Upsert(ctx, rec); err != nil {
		return nil, s.storeFailure("upsert", userID, rec.FactKey, err)
	}
	if err := s.store.InsertAttempt(ctx, attempt); err != nil {
		s.logger.Warn("attempt log write failed; schedule kept",
			zap.String("user_id", userID),
			zap.String("fact_key", rec.FactKey),
			zap.String("attempt_id", attempt.ID),
			zap.Error(err))
	}
	return &rec, nil
}

// GetFactsDueForReview lists due facts, never-scheduled first, then oldest
// review date. A limit <= 0 returns every due fact.
func (s *Service) GetFactsDueForReview(ctx context.Context, userID string, limit int) (DueReviewList, error) {
	now := s.now()
	due, err := s.store.QueryDue(ctx, userID, now, limit)
	if err != nil {
		return DueReviewList{}, s.storeFailure("query due", userID, "", err)
	}
	return DueReviewList{
		UserID: userID,
		AsOf:   now,
		Facts:  selector.DueForReview(due, now, limit),
	}, nil
}

// GetWeakFacts returns due facts first, then the lowest-easiness facts,
// without duplicates and never more than limit.
func (s *Service) GetWeakFacts(ctx context.Context, userID string, limit int) (WeakFactList, error) {
	if limit <= 0 {
		limit = DefaultWeakLimit
	}
	now := s.now()

	due, err := s.store.QueryDue(ctx, userID, now, limit)
	if err != nil {
		return WeakFactList{}, s.storeFailure("query due", userID, "", err)
	}
	due = selector.DueForReview(due, now, limit)

	var hardest []facts.Record
	if len(due) < limit {
		hardest, err = s.store.QueryByEasinessAscending(ctx, userID, limit)
		if err != nil {
			return WeakFactList{}, s.storeFailure("query by easiness", userID, "", err)
		}
		hardest = selector.ByEasiness(hardest, limit)
	}

	return WeakFactList{
		UserID:   userID,
		AsOf:     now,
		Facts:    selector.WeakFacts(due, hardest, limit),
		DueCount: len(due),
	}, nil
}

// GetPerformanceSummary aggregates every fact of the learner.
func (s *Service) GetPerformanceSummary(ctx context.Context, userID string) (selector.PerformanceSummary, error) {
	now := s.now()
	all, err := s.store.QueryAll(ctx, userID)
	if err != nil {
		return selector.PerformanceSummary{}, s.storeFailure("query all", userID, "", err)
	}
	return selector.Summarize(all, now), nil
}

// AnalyzeSessionPerformance processes a whole session: one bulk read, an
// in-memory fold, and one bulk write. An empty session returns an Outcome
// with Summary.Empty set and touches no store.
//
// If counting the remaining due facts fails after the session was saved,
// the Outcome is returned together with the *StoreError.
func (s *Service) AnalyzeSessionPerformance(ctx context.Context, userID string, attempts []session.Attempt) (*session.Outcome, error) {
	if len(attempts) == 0 {
		return &session.Outcome{Summary: session.Summary{Empty: true}}, nil
	}
	for _, a := range attempts {
		if err := a.Validate(); err != nil {
			return nil, err
		}
	}
	now := s.now()

	keys := make([]string, 0, len(attempts))
	seen := make(map[string]bool, len(attempts))
	for _, a := range attempts {
		k := a.Key(userID).FactKey()
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	existing, err := s.store.BulkGet(ctx, userID, keys)
	if err != nil {
		return nil, s.storeFailure("bulk get", userID, "", err)
	}

	out, err := session.Analyze(userID, existing, attempts, now, s.newID)
	if err != nil {
		return nil, err
	}

	if err := s.saveSession(ctx, userID, out); err != nil {
		return nil, err
	}

	due, err := s.store.QueryDue(ctx, userID, now, 0)
	if err != nil {
		return out, s.storeFailure("query due", userID, "", err)
	}
	out.Summary.RemainingDue = len(due)

	s.logger.Debug("session analyzed",
		zap.String("user_id", userID),
		zap.Int("attempts", out.Summary.TotalAttempts),
		zap.Int("facts", len(out.Records)),
		zap.Int("remaining_due", out.Summary.RemainingDue))
	return out, nil
}

func (s *Service) saveSession(ctx context.Context, userID string, out *session.Outcome) error {
	if atomic, ok := s.store.(store.AtomicFactStore); ok {
		if err := atomic.SaveSession(ctx, out.Records, out.Attempts); err != nil {
			return s.storeFailure("save session", userID, "", err)
		}
		return nil
	}

	if err := s.store.BulkUpsert(ctx, out.Records); err != nil {
		return s.storeFailure("bulk upsert", userID, "", err)
	}
	for _, a := range out.Attempts {
		if err := s.store.InsertAttempt(ctx, a); err != nil {
			s.logger.Warn("attempt log write failed; schedule kept",
				zap.String("user_id", userID),
				zap.String("fact_key", a.FactKey),
				zap.String("attempt_id", a.ID),
				zap.Error(err))
		}
	}
	return nil
}

// GetFact returns the record for operand1+operand2, or nil if the learner
// has never attempted it.
func (s *Service) GetFact(ctx context.Context, userID string, operand1, operand2 int) (*facts.Record, error) {
	key := facts.NewKey(userID, operand1, operand2).FactKey()
	rec, err := s.store.Get(ctx, userID, key)
	if err != nil {
		return nil, s.storeFailure("get", userID, key, err)
	}
	return rec, nil
}

// GetAllFacts returns every record of the learner.
func (s *Service) GetAllFacts(ctx context.Context, userID string) ([]facts.Record, error) {
	all, err := s.store.QueryAll(ctx, userID)
	if err != nil {
		return nil, s.storeFailure("query all", userID, "", err)
	}
	return all, nil
}

// GetAttemptHistory returns logged attempts newest first, optionally for a
// single fact. A limit <= 0 returns the whole history.
func (s *Service) GetAttemptHistory(ctx context.Context, userID, factKey string, limit int) ([]facts.Attempt, error) {
	attempts, err := s.store.ListAttempts(ctx, userID, store.AttemptQuery{FactKey: factKey, Limit: limit})
	if err != nil {
		return nil, s.storeFailure("list attempts", userID, factKey, err)
	}
	return attempts, nil
}

func (s *Service) storeFailure(op, userID, factKey string, err error) error {
	fields := []zap.Field{zap.String("op", op), zap.String("user_id", userID), zap.Error(err)}
	if factKey != "" {
		fields = append(fields, zap.String("fact_key", factKey))
	}
	s.logger.Error("fact store operation failed", fields...)
	return &StoreError{Op: op, Err: err}
}
