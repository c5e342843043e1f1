package vacancies

import (
	"context"
	"errors"
	"time"
)

// MaxResults caps list and search responses.
const MaxResults = 100

// Service implements vacancy use cases on top of a Repo.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

func (s *Service) Create(ctx context.Context, v Vacancy) (Vacancy, error) {
	if err := s.ready(); err != nil {
		return Vacancy{}, err
	}
	v.ID = 0
	v.CreatedAt = s.now()
	return s.Repo.Create(ctx, v)
}

func (s *Service) Get(ctx context.Context, id int64) (Vacancy, error) {
	if err := s.ready(); err != nil {
		return Vacancy{}, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Vacancy, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.Repo.List(ctx, MaxResults)
}

func (s *Service) Search(ctx context.Context, f Filter) ([]Vacancy, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.Repo.Search(ctx, f, MaxResults)
}

// Update loads the vacancy, lets apply modify it and stores the result.
// The id and creation time cannot be changed by apply.
func (s *Service) Update(ctx context.Context, id int64, apply func(*Vacancy) error) (Vacancy, error) {
	if err := s.ready(); err != nil {
		return Vacancy{}, err
	}
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Vacancy{}, err
	}
	updated := current
	if err := apply(&updated); err != nil {
		return Vacancy{}, err
	}
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt
	if err := s.Repo.Update(ctx, updated); err != nil {
		return Vacancy{}, err
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
		return errors.New("vacancies service not configured")
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
