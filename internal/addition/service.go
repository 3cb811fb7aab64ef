// Package addition tracks facts in table-practice mode: per-fact
// statistics classified into mastery levels, without SM-2 scheduling.
package addition

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/mathfacts/internal/facts"
	"github.com/abhisek/mathfacts/internal/mastery"
	"github.com/abhisek/mathfacts/internal/selector"
	"github.com/abhisek/mathfacts/internal/session"
	"github.com/abhisek/mathfacts/internal/store"
	"github.com/abhisek/mathfacts/internal/tracker"
)

// Query defaults.
const (
	DefaultMinAttempts   = 3
	DefaultMaxAccuracy   = 80.0
	DefaultWeakLimit     = 10
	DefaultMasteredLimit = 50

	// recommendationPool bounds the weak facts considered for a range.
	recommendationPool = 50
	// topFacts bounds the facts listed in recommendations and analyses.
	topFacts = 5
)

// ErrNoAttempts is returned by AnalyzeSession for an empty session.
var ErrNoAttempts = errors.New("no attempts to analyze")

// Service records table-practice attempts and answers mastery queries.
type Service struct {
	store  store.AdditionStore
	clock  func() time.Time
	newID  func() string
	logger *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithIDGenerator replaces the UUID generator for new records.
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

// NewService creates a table-practice service backed by as.
func NewService(as store.AdditionStore, opts ...Option) *Service {
	s := &Service{
		store:  as,
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

// TrackAttempt records one answer and reclassifies the fact's level.
func (s *Service) TrackAttempt(ctx context.Context, userID string, a session.Attempt) (*facts.AdditionRecord, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	key := a.Key(userID)

	existing, err := s.store.GetAdditionFact(ctx, userID, key.FactKey())
	if err != nil {
		return nil, s.storeFailure("get addition fact", userID, err)
	}

	rec := s.track(existing, key, a, now)
	if err := s.store.UpsertAdditionFacts(ctx, []facts.AdditionRecord{rec}); err != nil {
		return nil, s.storeFailure("upsert addition facts", userID, err)
	}
	return &rec, nil
}

func (s *Service) track(existing *facts.AdditionRecord, key facts.Key, a session.Attempt, now time.Time) facts.AdditionRecord {
	var base facts.AdditionRecord
	if existing == nil {
		base = facts.NewAdditionRecord(key, s.newID(), now)
	} else {
		base = *existing
	}

	at := now
	if a.AttemptedAt != nil {
		at = a.AttemptedAt.UTC()
	}
	next := base.Track(a.IsCorrect, a.ResponseTimeMs, at)
	updated := now
	next.UpdatedAt = &updated
	return next
}

// GetFactPerformance returns the record for operand1+operand2, or nil.
func (s *Service) GetFactPerformance(ctx context.Context, userID string, operand1, operand2 int) (*facts.AdditionRecord, error) {
	key := facts.NewKey(userID, operand1, operand2).FactKey()
	rec, err := s.store.GetAdditionFact(ctx, userID, key)
	if err != nil {
		return nil, s.storeFailure("get addition fact", userID, err)
	}
	return rec, nil
}

// GetWeakFacts returns facts with at least minAttempts attempts and at most
// maxAccuracy percent correct, worst first. limit <= 0 uses
// DefaultWeakLimit.
func (s *Service) GetWeakFacts(ctx context.Context, userID string, minAttempts int, maxAccuracy float64, limit int) ([]facts.AdditionRecord, error) {
	if limit <= 0 {
		limit = DefaultWeakLimit
	}
	all, err := s.store.QueryAdditionFacts(ctx, userID, store.AdditionQuery{})
	if err != nil {
		return nil, s.storeFailure("query addition facts", userID, err)
	}
	return selector.WeakAdditionFacts(all, minAttempts, maxAccuracy, limit), nil
}

// GetMasteredFacts returns mastered facts, most recently attempted first.
// limit <= 0 uses DefaultMasteredLimit.
func (s *Service) GetMasteredFacts(ctx context.Context, userID string, limit int) ([]facts.AdditionRecord, error) {
	if limit <= 0 {
		limit = DefaultMasteredLimit
	}
	mastered, err := s.store.QueryAdditionFacts(ctx, userID, store.AdditionQuery{Level: mastery.LevelMastered, Limit: limit})
	if err != nil {
		return nil, s.storeFailure("query addition facts", userID, err)
	}
	return selector.MasteredAdditionFacts(mastered, limit), nil
}

// GetPerformanceSummary counts facts per level and derives proficiency.
func (s *Service) GetPerformanceSummary(ctx context.Context, userID string) (selector.AdditionSummary, error) {
	all, err := s.store.QueryAdditionFacts(ctx, userID, store.AdditionQuery{})
	if err != nil {
		return selector.AdditionSummary{}, s.storeFailure("query addition facts", userID, err)
	}
	return selector.SummarizeAdditions(all), nil
}

// Recommendations suggests what to practice within an operand range.
type Recommendations struct {
	Low                int                    `json:"low"`
	High               int                    `json:"high"`
	TotalPossibleFacts int                    `json:"total_possible_facts"`
	WeakFactsCount     int                    `json:"weak_facts_count"`
	MasteredFactsCount int                    `json:"mastered_facts_count"`
	WeakFacts          []facts.AdditionRecord `json:"weak_facts"`
	Message            string                 `json:"recommendation"`
}

// SessionRange renders the range as "low to high".
func (r Recommendations) SessionRange() string {
	return fmt.Sprintf("%d to %d", r.Low, r.High)
}

// GetPracticeRecommendations looks at weak and mastered facts whose
// operands both lie in [low, high].
func (s *Service) GetPracticeRecommendations(ctx context.Context, userID string, low, high int) (*Recommendations, error) {
	if low > high {
		return nil, fmt.Errorf("invalid range %d to %d: low must not exceed high", low, high)
	}

	weak, err := s.GetWeakFacts(ctx, userID, DefaultMinAttempts, DefaultMaxAccuracy, recommendationPool)
	if err != nil {
		return nil, err
	}
	mastered, err := s.GetMasteredFacts(ctx, userID, DefaultMasteredLimit)
	if err != nil {
		return nil, err
	}

	weak = selector.AdditionFactsInRange(weak, low, high)
	mastered = selector.AdditionFactsInRange(mastered, low, high)
	span := high - low + 1

	rec := &Recommendations{
		Low:                low,
		High:               high,
		TotalPossibleFacts: span * span,
		WeakFactsCount:     len(weak),
		MasteredFactsCount: len(mastered),
		WeakFacts:          weak[:min(topFacts, len(weak))],
	}
	rec.Message = recommendationMessage(rec.WeakFactsCount, rec.MasteredFactsCount, rec.TotalPossibleFacts)
	return rec, nil
}

func recommendationMessage(weak, mastered, total int) string {
	switch {
	case weak == 0 && mastered == total:
		return "Excellent! You've mastered all facts in this range. Consider trying a harder range."
	case weak == 0:
		return "Great work! No weak facts detected. Keep practicing to master the remaining facts."
	case weak <= 3:
		return fmt.Sprintf("Focus on these %d facts that need more practice.", weak)
	case weak <= 10:
		return fmt.Sprintf("You have %d facts to work on. Take your time with each one.", weak)
	default:
		return fmt.Sprintf("%d facts need attention. Consider practicing smaller ranges for better focus.", weak)
	}
}

// SessionAnalysis describes a processed table-practice session.
type SessionAnalysis struct {
	Accuracy        float64 `json:"session_accuracy"`
	TotalAttempts   int     `json:"total_attempts"`
	CorrectAttempts int     `json:"correct_attempts"`
	FactsPracticed  int     `json:"facts_practiced"`
	// MasteryImprovements lists facts whose level rose during the session.
	MasteryImprovements []mastery.Transition `json:"mastery_improvements"`
	// FactsNeedingPractice lists up to five practiced facts below the
	// weak-accuracy threshold.
	FactsNeedingPractice []string               `json:"facts_needing_practice"`
	Records              []facts.AdditionRecord `json:"updated_performances"`
}

// AnalyzeSession records every attempt with one bulk read and one bulk
// write, then summarizes the session.
func (s *Service) AnalyzeSession(ctx context.Context, userID string, attempts []session.Attempt) (*SessionAnalysis, error) {
	if len(attempts) == 0 {
		return nil, ErrNoAttempts
	}
	for _, a := range attempts {
		if err := a.Validate(); err != nil {
			return nil, err
		}
	}
	now := s.now()

	var order []string
	seen := make(map[string]bool)
	for _, a := range attempts {
		k := a.Key(userID).FactKey()
		if !seen[k] {
			seen[k] = true
			order = append(order, k)
		}
	}

	existing, err := s.store.BulkGetAdditionFacts(ctx, userID, order)
	if err != nil {
		return nil, s.storeFailure("bulk get addition facts", userID, err)
	}

	levelBefore := make(map[string]mastery.Level, len(order))
	for _, k := range order {
		levelBefore[k] = mastery.LevelLearning
		if r, ok := existing[k]; ok {
			levelBefore[k] = r.Level
		}
	}

	out := &SessionAnalysis{TotalAttempts: len(attempts), FactsPracticed: len(order)}
	current := make(map[string]facts.AdditionRecord, len(order))
	for k, r := range existing {
		current[k] = r
	}
	for _, a := range attempts {
		key := a.Key(userID)
		var prev *facts.AdditionRecord
		if r, ok := current[key.FactKey()]; ok {
			prev = &r
		}
		current[key.FactKey()] = s.track(prev, key, a, now)
		if a.IsCorrect {
			out.CorrectAttempts++
		}
	}

	for _, k := range order {
		r := current[k]
		out.Records = append(out.Records, r)

		t := mastery.Transition{FactKey: k, From: levelBefore[k], To: r.Level}
		if t.Improved() {
			out.MasteryImprovements = append(out.MasteryImprovements, t)
		}
		if r.TotalAttempts >= DefaultMinAttempts && r.Accuracy() < DefaultMaxAccuracy && len(out.FactsNeedingPractice) < topFacts {
			out.FactsNeedingPractice = append(out.FactsNeedingPractice, k)
		}
	}
	out.Accuracy = selector.RoundTenth(float64(out.CorrectAttempts) / float64(out.TotalAttempts) * 100)

	if err := s.store.UpsertAdditionFacts(ctx, out.Records); err != nil {
		return nil, s.storeFailure("upsert addition facts", userID, err)
	}
	return out, nil
}

func (s *Service) storeFailure(op, userID string, err error) error {
	s.logger.Error("addition store operation failed",
		zap.String("op", op),
		zap.String("user_id", userID),
		zap.Error(err))
	return &tracker.StoreError{Op: op, Err: err}
}
