package coveragestore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository stores run records in-memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
}

// NewMemoryRepository constructs an in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: map[uuid.UUID]Record{}}
}

// Save stores a record, replacing any record with the same ID.
func (r *MemoryRepository) Save(_ context.Context, record Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = record
	return nil
}

// Get returns the record with the given ID or ErrRecordNotFound.
func (r *MemoryRepository) Get(_ context.Context, id uuid.UUID) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	if !ok {
		return Record{}, ErrRecordNotFound
	}
	return record, nil
}

// Recent returns up to limit records ordered newest first by start time.
func (r *MemoryRepository) Recent(_ context.Context, limit int) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]Record, 0, len(r.records))
	for _, record := range r.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].StartedAt.Equal(records[j].StartedAt) {
			return records[i].ID.String() > records[j].ID.String()
		}
		return records[i].StartedAt.After(records[j].StartedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
