package resumes

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used in dev mode and
// in tests when no database is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Record // key -> records in insertion order
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Record),
	}
}

// Put appends a record under its key.
func (r *MemoryRepo) Put(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[rec.UserID] = append(r.data[rec.UserID], rec)
	return nil
}

// Latest returns the newest record for a key.
func (r *MemoryRepo) Latest(ctx context.Context, key string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	recs := r.data[key]
	if len(recs) == 0 {
		return Record{}, ErrNotFound
	}
	return recs[len(recs)-1], nil
}

// All returns every record for a key, newest first.
func (r *MemoryRepo) All(ctx context.Context, key string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	recs := r.data[key]
	out := make([]Record, 0, len(recs))
	for i := len(recs) - 1; i >= 0; i-- {
		out = append(out, recs[i])
	}
	return out, nil
}

// DeleteAll removes every record for a key.
func (r *MemoryRepo) DeleteAll(ctx context.Context, key string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.data[key])
	delete(r.data, key)
	return n, nil
}

var _ Repo = (*MemoryRepo)(nil)
