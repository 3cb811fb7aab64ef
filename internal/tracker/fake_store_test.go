package tracker

import (
	"context"
	"sort"
	"time"

	"github.com/abhisek/mathfacts/internal/facts"
	"github.com/abhisek/mathfacts/internal/store"
)

// memStore is an in-memory store.FactStore with injectable failures.
type memStore struct {
	records  map[string]facts.Record // user_id + "/" + fact_key
	attempts []facts.Attempt
	calls    int

	getErr, upsertErr, attemptErr, queryErr error
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]facts.Record)}
}

func recKey(userID, factKey string) string { return userID + "/" + factKey }

func (m *memStore) Get(_ context.Context, userID, factKey string) (*facts.Record, error) {
	m.calls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	r, ok := m.records[recKey(userID, factKey)]
	if !ok {
		return nil, nil
	}
	c := r.Clone()
	return &c, nil
}

func (m *memStore) BulkGet(_ context.Context, userID string, factKeys []string) (map[string]facts.Record, error) {
	m.calls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := make(map[string]facts.Record)
	for _, k := range factKeys {
		if r, ok := m.records[recKey(userID, k)]; ok {
			out[k] = r.Clone()
		}
	}
	return out, nil
}

func (m *memStore) Upsert(ctx context.Context, rec facts.Record) error {
	return m.BulkUpsert(ctx, []facts.Record{rec})
}

func (m *memStore) BulkUpsert(_ context.Context, recs []facts.Record) error {
	m.calls++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	for _, r := range recs {
		m.records[recKey(r.UserID, r.FactKey)] = r.Clone()
	}
	return nil
}

func (m *memStore) InsertAttempt(_ context.Context, a facts.Attempt) error {
	m.calls++
	if m.attemptErr != nil {
		return m.attemptErr
	}
	a.Sequence = int64(len(m.attempts) + 1)
	m.attempts = append(m.attempts, a)
	return nil
}

func (m *memStore) userRecords(userID string) []facts.Record {
	var out []facts.Record
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FactKey < out[j].FactKey })
	return out
}

// QueryDue deliberately returns records unordered and unlimited.
func (m *memStore) QueryDue(_ context.Context, userID string, now time.Time, _ int) ([]facts.Record, error) {
	m.calls++
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	var due []facts.Record
	for _, r := range m.userRecords(userID) {
		if r.IsDueForReview(now) {
			due = append(due, r)
		}
	}
	return due, nil
}

func (m *memStore) QueryByEasinessAscending(_ context.Context, userID string, _ int) ([]facts.Record, error) {
	m.calls++
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.userRecords(userID), nil
}

func (m *memStore) QueryAll(_ context.Context, userID string) ([]facts.Record, error) {
	m.calls++
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.userRecords(userID), nil
}

func (m *memStore) ListAttempts(_ context.Context, userID string, q store.AttemptQuery) ([]facts.Attempt, error) {
	m.calls++
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	var out []facts.Attempt
	for i := len(m.attempts) - 1; i >= 0; i-- {
		a := m.attempts[i]
		if a.UserID != userID || (q.FactKey != "" && a.FactKey != q.FactKey) {
			continue
		}
		out = append(out, a)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

// atomicMemStore adds transactional saves on top of memStore.
type atomicMemStore struct {
	*memStore
	saveErr    error
	savedCalls int
}

func (m *atomicMemStore) SaveAttempt(ctx context.Context, rec facts.Record, a facts.Attempt) error {
	return m.SaveSession(ctx, []facts.Record{rec}, []facts.Attempt{a})
}

func (m *atomicMemStore) SaveSession(ctx context.Context, recs []facts.Record, attempts []facts.Attempt) error {
	m.savedCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	if err := m.BulkUpsert(ctx, recs); err != nil {
		return err
	}
	for _, a := range attempts {
		if err := m.InsertAttempt(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
