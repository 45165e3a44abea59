package user

import (
	"time"

	"github.com/nekogravitycat/vehicle-booking-board/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.Kind(apperror.ErrNotFound, "user not found")
	ErrUsernameTaken        = apperror.Kind(apperror.ErrDuplicate, "username already exists")
	ErrUsernameRequired     = apperror.Kind(apperror.ErrValidation, "username is required")
	ErrInvalidPhone         = apperror.Kind(apperror.ErrValidation, "invalid phone number")
	ErrInvalidCredentials   = apperror.Kind(apperror.ErrAuth, "invalid username or password")
	ErrConfirmationRequired = apperror.Kind(apperror.ErrValidation, "profile deletion must be confirmed")
)

// TimestampLayout is the ISO-8601 form used for PendingRequest.Timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Record is a registered vehicle owner together with the bookings made against them.
// It is the unit persisted by a Repository.
type Record struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Phone    string `json:"phone"`

	// Available is derived from ConfirmedBookings on every load and is never authoritative.
	Available bool `json:"available"`

	BookingRequests   []PendingRequest   `json:"bookingRequests,omitempty"`
	ConfirmedBookings []ConfirmedBooking `json:"confirmedBookings,omitempty"`
}

// PendingRequest is a booking awaiting confirmation by the owner.
// Name is the requester's display name and need not be a registered username.
type PendingRequest struct {
	Name      string `json:"name"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ConfirmedBooking is a PendingRequest accepted by the owner.
type ConfirmedBooking PendingRequest

// FormatTimestamp renders t the way PendingRequest.Timestamp stores it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	c := r
	if r.BookingRequests != nil {
		c.BookingRequests = append([]PendingRequest(nil), r.BookingRequests...)
	}
	if r.ConfirmedBookings != nil {
		c.ConfirmedBookings = append([]ConfirmedBooking(nil), r.ConfirmedBookings...)
	}
	return c
}

// CloneAll deep copies a record list. A nil list stays nil.
func CloneAll(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// IndexOf returns the position of the record with the given username, or -1.
func IndexOf(records []Record, username string) int {
	for i := range records {
		if records[i].Username == username {
			return i
		}
	}
	return -1
}
