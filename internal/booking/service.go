package booking

import (
	"context"
	"time"

	"github.com/nekogravitycat/vehicle-booking-board/internal/user"
)

// Service runs booking operations against the persisted document.
// Every method returns the swept, display-ordered list of owners.
type Service interface {
	List(ctx context.Context, filter Filter) ([]user.Record, error)
	Request(ctx context.Context, owner string, req NewRequest) ([]user.Record, error)
	Confirm(ctx context.Context, owner, requester, password string) ([]user.Record, error)
	Cancel(ctx context.Context, owner, requester, password string) ([]user.Record, error)
	DeleteConfirmed(ctx context.Context, owner, requester, password string) ([]user.Record, error)
}

type service struct {
	repo user.Repository
	now  func() time.Time
}

// NewService creates a booking Service. now must return the current time in
// the zone booking dates and times are interpreted in; nil means time.Now.
func NewService(repo user.Repository, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		repo: repo,
		now:  now,
	}
}

// List sweeps and persists the document, then applies the filter.
func (s *service) List(ctx context.Context, filter Filter) ([]user.Record, error) {
	now := s.now()
	records, err := s.repo.Update(ctx, func(records []user.Record) ([]user.Record, error) {
		return Sweep(records, now), nil
	})
	if err != nil {
		return nil, err
	}
	return SortForDisplay(FilterVehicles(records, filter)), nil
}

func (s *service) Request(ctx context.Context, owner string, req NewRequest) ([]user.Record, error) {
	return s.mutate(ctx, func(records []user.Record, now time.Time) ([]user.Record, error) {
		return RequestBooking(records, owner, req, now)
	})
}

func (s *service) Confirm(ctx context.Context, owner, requester, password string) ([]user.Record, error) {
	return s.mutate(ctx, func(records []user.Record, _ time.Time) ([]user.Record, error) {
		return ConfirmBooking(records, owner, requester, password)
	})
}

func (s *service) Cancel(ctx context.Context, owner, requester, password string) ([]user.Record, error) {
	return s.mutate(ctx, func(records []user.Record, _ time.Time) ([]user.Record, error) {
		return CancelBooking(records, owner, requester, password)
	})
}

func (s *service) DeleteConfirmed(ctx context.Context, owner, requester, password string) ([]user.Record, error) {
	return s.mutate(ctx, func(records []user.Record, _ time.Time) ([]user.Record, error) {
		return DeleteConfirmedBooking(records, owner, requester, password)
	})
}

// mutate sweeps the loaded document, applies op and writes the result once.
// Nothing is written when op fails.
func (s *service) mutate(ctx context.Context, op func(records []user.Record, now time.Time) ([]user.Record, error)) ([]user.Record, error) {
	now := s.now()
	records, err := s.repo.Update(ctx, func(records []user.Record) ([]user.Record, error) {
		next, err := op(Sweep(records, now), now)
		if err != nil {
			return nil, err
		}
		return ComputeAvailability(next, now), nil
	})
	if err != nil {
		return nil, err
	}
	return SortForDisplay(records), nil
}
