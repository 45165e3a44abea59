package booking

import (
	"time"

	"github.com/nekogravitycat/vehicle-booking-board/internal/pkg/apperror"
)

var (
	ErrOwnerNotFound     = apperror.Kind(apperror.ErrNotFound, "owner not found")
	ErrRequestNotFound   = apperror.Kind(apperror.ErrNotFound, "booking request not found")
	ErrBookingNotFound   = apperror.Kind(apperror.ErrNotFound, "booking not found")
	ErrMissingDetails    = apperror.Kind(apperror.ErrValidation, "please fill all booking details")
	ErrDuplicateRequest  = apperror.Kind(apperror.ErrDuplicate, "a booking request for this date already exists")
	ErrIncorrectPassword = apperror.Kind(apperror.ErrAuth, "incorrect password")
)

const (
	// PendingRequestTTL is how long a request waits for confirmation before it is purged.
	PendingRequestTTL = 10 * time.Minute

	// AvailabilityWindow is how far ahead a confirmed booking marks its owner unavailable.
	AvailabilityWindow = 24 * time.Hour
)

// NewRequest is the booking form submitted by a requester.
type NewRequest struct {
	Name      string
	Date      string
	StartTime string
	EndTime   string
}

// Filter narrows the vehicle list. Empty fields are not applied.
type Filter struct {
	Name      string // case-insensitive substring of the owner username
	Date      string // YYYY-MM-DD
	StartTime string // HH:MM, only used together with Date
	EndTime   string // HH:MM, only used together with Date
}
