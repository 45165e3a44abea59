package user

import (
	"context"
)

// Service defines the profile operations of vehicle owners.
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*Record, error)
	UpdateDetails(ctx context.Context, in UpdateInput) (*Record, error)
	DeleteProfile(ctx context.Context, username, password string, confirmed bool) error
	GetByUsername(ctx context.Context, username string) (*Record, error)
}

// SweepFunc refreshes derived state (expired requests, availability) on a
// loaded document. It must not mutate its input.
type SweepFunc func(records []Record) []Record

// Option configures a Service.
type Option func(*service)

// WithSweep runs sweep on the loaded document before each profile change and
// again on the result before it is written.
func WithSweep(sweep SweepFunc) Option {
	return func(s *service) {
		if sweep != nil {
			s.sweep = sweep
		}
	}
}

type service struct {
	repo  Repository
	rules PhoneRules
	sweep SweepFunc
}

// NewService creates a new user Service. A nil rule table falls back to DefaultPhoneRules.
func NewService(repo Repository, rules PhoneRules, opts ...Option) Service {
	if rules == nil {
		rules = DefaultPhoneRules()
	}
	s := &service{
		repo:  repo,
		rules: rules,
		sweep: func(records []Record) []Record { return records },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// mutate applies op to the swept document and writes the swept result once.
// Nothing is written when op fails.
func (s *service) mutate(ctx context.Context, op func(records []Record) ([]Record, error)) ([]Record, error) {
	return s.repo.Update(ctx, func(records []Record) ([]Record, error) {
		out, err := op(s.sweep(records))
		if err != nil {
			return nil, err
		}
		return s.sweep(out), nil
	})
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*Record, error) {
	var username string
	records, err := s.mutate(ctx, func(records []Record) ([]Record, error) {
		out, rec, err := Register(records, s.rules, in)
		if err != nil {
			return nil, err
		}
		username = rec.Username
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return find(records, username)
}

func (s *service) UpdateDetails(ctx context.Context, in UpdateInput) (*Record, error) {
	var username string
	records, err := s.mutate(ctx, func(records []Record) ([]Record, error) {
		out, rec, err := UpdateDetails(records, s.rules, in)
		if err != nil {
			return nil, err
		}
		username = rec.Username
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return find(records, username)
}

func (s *service) DeleteProfile(ctx context.Context, username, password string, confirmed bool) error {
	_, err := s.mutate(ctx, func(records []Record) ([]Record, error) {
		return DeleteProfile(records, username, password, confirmed)
	})
	return err
}

func (s *service) GetByUsername(ctx context.Context, username string) (*Record, error) {
	records, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return find(records, username)
}

func find(records []Record, username string) (*Record, error) {
	idx := IndexOf(records, username)
	if idx == -1 {
		return nil, ErrNotFound
	}
	rec := records[idx].Clone()
	return &rec, nil
}
