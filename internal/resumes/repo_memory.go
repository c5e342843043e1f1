package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo keeps resumes in process memory. Used when no database is configured.
type MemoryRepo struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]Resume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[int64]Resume)}
}

func (m *MemoryRepo) Create(ctx context.Context, r Resume) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	r.ID = m.seq
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	m.items[r.ID] = r
	return r, nil
}

func (m *MemoryRepo) GetByID(ctx context.Context, id int64) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.items[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return r, nil
}

func (m *MemoryRepo) List(ctx context.Context, limit int) ([]Resume, error) {
	return m.Search(ctx, Filter{}, limit)
}

func (m *MemoryRepo) Search(ctx context.Context, f Filter, limit int) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := make([]Resume, 0, len(m.items))
	for _, r := range m.items {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryRepo) Update(ctx context.Context, r Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[r.ID]
	if !ok {
		return ErrNotFound
	}
	r.CreatedAt = existing.CreatedAt
	m.items[r.ID] = r
	return nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}
