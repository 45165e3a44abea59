package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/vehicle-booking-board/internal/store"
	"github.com/nekogravitycat/vehicle-booking-board/internal/user"
)

func setupService(seed ...user.Record) (*store.MemoryStore, Service, *time.Time) {
	repo := store.NewMemoryStore(seed...)
	now := baseNow
	svc := NewService(repo, func() time.Time { return now })
	return repo, svc, &now
}

func TestService_RequestAndConfirm(t *testing.T) {
	repo, svc, _ := setupService(
		user.Record{Username: "Alice", Password: "pw1", Phone: "+911234567890", Available: true},
		user.Record{Username: "Carol", Password: "pw3", Phone: "+911111111111", Available: true},
	)
	ctx := context.Background()

	users, err := svc.Request(ctx, "Alice", NewRequest{Name: "Bob", Date: "2025-06-01", StartTime: "10:00", EndTime: "11:00"})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, 1, repo.Saves())

	users, err = svc.Confirm(ctx, "Alice", "Bob", "pw1")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.Saves())

	// Carol is still available, so she is listed first.
	assert.Equal(t, []string{"Carol", "Alice"}, usernames(users))
	assert.False(t, users[1].Available)
	assert.Len(t, users[1].ConfirmedBookings, 1)

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice", stored[0].Username, "the store keeps insertion order")
	assert.False(t, stored[0].Available)
}

func TestService_FailedOperationsDoNotSave(t *testing.T) {
	repo, svc, _ := setupService(user.Record{Username: "Alice", Password: "pw1"})
	ctx := context.Background()

	_, err := svc.Request(ctx, "Nobody", NewRequest{Name: "Bob", Date: "2025-06-01", StartTime: "10:00", EndTime: "11:00"})
	assert.ErrorIs(t, err, ErrOwnerNotFound)

	_, err = svc.Request(ctx, "Alice", NewRequest{Name: "Bob"})
	assert.ErrorIs(t, err, ErrMissingDetails)

	_, err = svc.Confirm(ctx, "Alice", "Bob", "wrong")
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	_, err = svc.Cancel(ctx, "Alice", "Bob", "pw1")
	assert.ErrorIs(t, err, ErrRequestNotFound)

	_, err = svc.DeleteConfirmed(ctx, "Alice", "Bob", "pw1")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	assert.Equal(t, 0, repo.Saves())
}

func TestService_PendingRequestsExpire(t *testing.T) {
	_, svc, now := setupService(user.Record{Username: "Alice", Password: "pw1"})
	ctx := context.Background()

	_, err := svc.Request(ctx, "Alice", NewRequest{Name: "Bob", Date: "2025-06-02", StartTime: "10:00", EndTime: "11:00"})
	require.NoError(t, err)

	*now = now.Add(PendingRequestTTL)

	_, err = svc.Confirm(ctx, "Alice", "Bob", "pw1")
	assert.ErrorIs(t, err, ErrRequestNotFound, "the request expired before confirmation")

	// The same requester may ask again once the old request is gone.
	users, err := svc.Request(ctx, "Alice", NewRequest{Name: "Bob", Date: "2025-06-02", StartTime: "10:00", EndTime: "11:00"})
	require.NoError(t, err)
	assert.Len(t, users[0].BookingRequests, 1)
}

func TestService_ListSweepsAndFilters(t *testing.T) {
	stale := user.FormatTimestamp(baseNow.Add(-time.Hour))
	repo, svc, _ := setupService(
		user.Record{
			Username:          "Alice",
			Available:         true,
			BookingRequests:   []user.PendingRequest{{Name: "x", Date: "2025-06-01", StartTime: "09:00", EndTime: "10:00", Timestamp: stale}},
			ConfirmedBookings: []user.ConfirmedBooking{{Name: "bob", Date: "2025-06-01", StartTime: "12:30", EndTime: "13:30"}},
		},
		user.Record{Username: "Carol", Available: false},
	)
	ctx := context.Background()

	users, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Carol", "Alice"}, usernames(users))
	assert.True(t, users[0].Available)
	assert.False(t, users[1].Available)
	assert.Empty(t, users[1].BookingRequests)
	assert.Equal(t, 1, repo.Saves(), "the sweep is persisted")

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored[0].BookingRequests)

	users, err = svc.List(ctx, Filter{Date: "2025-06-01", StartTime: "12:00", EndTime: "13:00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Carol"}, usernames(users))
}

func TestService_DeleteConfirmedRestoresAvailability(t *testing.T) {
	_, svc, _ := setupService(user.Record{
		Username:          "Alice",
		Password:          "pw1",
		ConfirmedBookings: []user.ConfirmedBooking{{Name: "bob", Date: "2025-06-01", StartTime: "10:00", EndTime: "11:00"}},
	})
	ctx := context.Background()

	users, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.False(t, users[0].Available)

	users, err = svc.DeleteConfirmed(ctx, "Alice", "bob", "pw1")
	require.NoError(t, err)
	assert.True(t, users[0].Available)
	assert.Empty(t, users[0].ConfirmedBookings)
}

func TestService_CancelledContext(t *testing.T) {
	repo, svc, _ := setupService(user.Record{Username: "Alice", Password: "pw1"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.List(ctx, Filter{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, repo.Saves())
}
