package store

import (
	"context"
	"sync"

	"github.com/nekogravitycat/vehicle-booking-board/internal/user"
)

// Ensure MemoryStore satisfies the user.Repository interface at compile time.
var _ user.Repository = (*MemoryStore)(nil)

// MemoryStore keeps the document in process memory. Reads and writes operate
// on cloned snapshots so callers never share slices with the store.
type MemoryStore struct {
	mu      sync.Mutex // serializes Update
	stateMu sync.RWMutex
	records []user.Record
	saves   int
}

// NewMemoryStore creates a MemoryStore seeded with the given records.
func NewMemoryStore(seed ...user.Record) *MemoryStore {
	return &MemoryStore{records: user.CloneAll(seed)}
}

func (s *MemoryStore) Load(ctx context.Context) ([]user.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	out := user.CloneAll(s.records)
	if out == nil {
		out = []user.Record{}
	}
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, records []user.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.records = user.CloneAll(records)
	s.saves++
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, fn func(records []user.Record) ([]user.Record, error)) ([]user.Record, error) {
	return serializedUpdate(ctx, &s.mu, s, fn)
}

// Saves reports how many times the document has been written.
func (s *MemoryStore) Saves() int {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.saves
}
