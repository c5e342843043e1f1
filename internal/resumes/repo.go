package resumes

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no resume has the requested id.
var ErrNotFound = errors.New("resume not found")

// Repo defines persistence operations for resumes.
type Repo interface {
	Create(ctx context.Context, r Resume) (Resume, error)
	GetByID(ctx context.Context, id int64) (Resume, error)
	List(ctx context.Context, limit int) ([]Resume, error)
	Search(ctx context.Context, f Filter, limit int) ([]Resume, error)
	Update(ctx context.Context, r Resume) error
	Delete(ctx context.Context, id int64) error
}
