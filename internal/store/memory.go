package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/bilgiconline/isealim/internal/application"
)

// Memory is an in-memory Repository used by tests. It applies the same
// ordering contract as the Postgres implementation.
type Memory struct {
	mu   sync.RWMutex
	recs map[string]application.Record
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{recs: make(map[string]application.Record)}
}

func (m *Memory) Insert(_ context.Context, rec *application.Record) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	rec.ID = id
	m.recs[id] = *rec
	return id, nil
}

func (m *Memory) Get(_ context.Context, id string) (*application.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.recs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (m *Memory) UpdateStatus(_ context.Context, id string, status application.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.recs[id]
	if !ok {
		return ErrNotFound
	}
	rec.Status = status
	m.recs[id] = rec
	return nil
}

func (m *Memory) List(_ context.Context) ([]application.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := make([]application.Record, 0, len(m.recs))
	for _, rec := range m.recs {
		recs = append(recs, rec)
	}

	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].SubmittedAt.Equal(recs[j].SubmittedAt) {
			return recs[i].SubmittedAt.After(recs[j].SubmittedAt)
		}
		return recs[i].ID > recs[j].ID
	})
	return recs, nil
}

// Len returns the number of stored records.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.recs)
}
