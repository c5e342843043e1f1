package resumes

import (
	"context"
	"errors"
	"time"
)

// MaxResults caps list and search responses.
const MaxResults = 100

// Service implements resume use cases on top of a Repo.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

func (s *Service) Create(ctx context.Context, r Resume) (Resume, error) {
	if err := s.ready(); err != nil {
		return Resume{}, err
	}
	r.ID = 0
	r.CreatedAt = s.now()
	return s.Repo.Create(ctx, r)
}

func (s *Service) Get(ctx context.Context, id int64) (Resume, error) {
	if err := s.ready(); err != nil {
		return Resume{}, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Resume, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.Repo.List(ctx, MaxResults)
}

func (s *Service) Search(ctx context.Context, f Filter) ([]Resume, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.Repo.Search(ctx, f, MaxResults)
}

// Update loads the resume, applies the change and stores it. id and created_at are preserved.
func (s *Service) Update(ctx context.Context, id int64, apply func(*Resume) error) (Resume, error) {
	if err := s.ready(); err != nil {
		return Resume{}, err
	}
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	updated := current
	if err := apply(&updated); err != nil {
		return Resume{}, err
	}
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt
	if err := s.Repo.Update(ctx, updated); err != nil {
		return Resume{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil {
		return errors.New("resumes service not configured")
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
