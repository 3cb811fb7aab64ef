package addition

import (
	"context"

	"github.com/abhisek/mathfacts/internal/facts"
	"github.com/abhisek/mathfacts/internal/selector"
	"github.com/abhisek/mathfacts/internal/store"
)

// memStore is an in-memory store.AdditionStore with injectable failures.
type memStore struct {
	records map[string]facts.AdditionRecord // user_id + "/" + fact_key
	upserts int

	getErr, upsertErr, queryErr error
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]facts.AdditionRecord)}
}

func recKey(userID, factKey string) string { return userID + "/" + factKey }

func (m *memStore) GetAdditionFact(_ context.Context, userID, factKey string) (*facts.AdditionRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	r, ok := m.records[recKey(userID, factKey)]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memStore) BulkGetAdditionFacts(_ context.Context, userID string, factKeys []string) (map[string]facts.AdditionRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := make(map[string]facts.AdditionRecord)
	for _, k := range factKeys {
		if r, ok := m.records[recKey(userID, k)]; ok {
			out[k] = r
		}
	}
	return out, nil
}

func (m *memStore) UpsertAdditionFacts(_ context.Context, recs []facts.AdditionRecord) error {
	m.upserts++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	for _, r := range recs {
		m.records[recKey(r.UserID, r.FactKey)] = r
	}
	return nil
}

func (m *memStore) QueryAdditionFacts(_ context.Context, userID string, q store.AdditionQuery) ([]facts.AdditionRecord, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	var out []facts.AdditionRecord
	for _, r := range m.records {
		if r.UserID != userID {
			continue
		}
		if q.Level != "" && r.Level != q.Level {
			continue
		}
		out = append(out, r)
	}
	if q.Level != "" {
		out = selector.MasteredAdditionFacts(out, q.Limit)
	}
	return out, nil
}

// seed stores a record with the given counts, attempted at t0.
func (m *memStore) seed(userID string, op1, op2, total, correctCount int) facts.AdditionRecord {
	rec := facts.NewAdditionRecord(facts.NewKey(userID, op1, op2), "seed-"+facts.FormatFactKey(op1, op2), t0)
	for i := 0; i < total; i++ {
		rec = rec.Track(i < correctCount, 1500, t0)
	}
	m.records[recKey(userID, rec.FactKey)] = rec
	return rec
}
