package vacancies

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no vacancy has the requested id.
var ErrNotFound = errors.New("vacancy not found")

// Repo defines persistence operations for vacancies.
type Repo interface {
	Create(ctx context.Context, v Vacancy) (Vacancy, error)
	GetByID(ctx context.Context, id int64) (Vacancy, error)
	List(ctx context.Context, limit int) ([]Vacancy, error)
	Search(ctx context.Context, f Filter, limit int) ([]Vacancy, error)
	Update(ctx context.Context, v Vacancy) error
	Delete(ctx context.Context, id int64) error
}
