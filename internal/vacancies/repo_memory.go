package vacancies

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]Vacancy
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[int64]Vacancy)}
}

func (r *MemoryRepo) Create(ctx context.Context, v Vacancy) (Vacancy, error) {
	if err := ctx.Err(); err != nil {
		return Vacancy{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	v.ID = r.seq
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	r.items[v.ID] = v
	return v, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Vacancy, error) {
	if err := ctx.Err(); err != nil {
		return Vacancy{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return Vacancy{}, ErrNotFound
	}
	return v, nil
}

func (r *MemoryRepo) List(ctx context.Context, limit int) ([]Vacancy, error) {
	return r.Search(ctx, Filter{}, limit)
}

// Search returns matching vacancies ordered by id.
func (r *MemoryRepo) Search(ctx context.Context, f Filter, limit int) ([]Vacancy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Vacancy, 0, len(r.items))
	for _, v := range r.items {
		if f.Matches(v) {
			out = append(out, v)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, v Vacancy) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[v.ID]
	if !ok {
		return ErrNotFound
	}
	v.CreatedAt = existing.CreatedAt
	r.items[v.ID] = v
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}
