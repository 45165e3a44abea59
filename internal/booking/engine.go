package booking

import (
	"sort"
	"strings"
	"time"

	"github.com/nekogravitycat/vehicle-booking-board/internal/user"
)

// Every function in this file treats its input as read-only and returns a new
// slice, so a caller can keep the previous snapshot around.

// ComputeAvailability marks an owner unavailable when one of their confirmed
// bookings starts within [now, now+AvailabilityWindow].
func ComputeAvailability(users []user.Record, now time.Time) []user.Record {
	out := user.CloneAll(users)
	limit := now.Add(AvailabilityWindow)

	for i := range out {
		booked := false
		for _, b := range out[i].ConfirmedBookings {
			start, ok := instant(b.Date, b.StartTime, now.Location())
			if ok && !start.Before(now) && !start.After(limit) {
				booked = true
				break
			}
		}
		out[i].Available = !booked
	}
	return out
}

// ExpirePendingRequests drops pending requests created PendingRequestTTL or
// more before now. Requests with an unreadable timestamp are dropped as well.
func ExpirePendingRequests(users []user.Record, now time.Time) []user.Record {
	out := user.CloneAll(users)

	for i := range out {
		if out[i].BookingRequests == nil {
			continue
		}
		kept := out[i].BookingRequests[:0]
		for _, req := range out[i].BookingRequests {
			created, err := time.Parse(time.RFC3339Nano, req.Timestamp)
			if err == nil && now.Sub(created) < PendingRequestTTL {
				kept = append(kept, req)
			}
		}
		out[i].BookingRequests = kept
	}
	return out
}

// Sweep is the load pipeline: expiry followed by availability.
func Sweep(users []user.Record, now time.Time) []user.Record {
	return ComputeAvailability(ExpirePendingRequests(users, now), now)
}

// RequestBooking appends a pending request to the owner's list.
func RequestBooking(users []user.Record, owner string, req NewRequest, now time.Time) ([]user.Record, error) {
	idx := user.IndexOf(users, owner)
	if idx == -1 {
		return nil, ErrOwnerNotFound
	}

	pending := user.PendingRequest{
		Name:      strings.TrimSpace(req.Name),
		Date:      strings.TrimSpace(req.Date),
		StartTime: strings.TrimSpace(req.StartTime),
		EndTime:   strings.TrimSpace(req.EndTime),
		Timestamp: user.FormatTimestamp(now),
	}
	if pending.Name == "" || pending.Date == "" || pending.StartTime == "" || pending.EndTime == "" {
		return nil, ErrMissingDetails
	}

	for _, existing := range users[idx].BookingRequests {
		if existing.Name == pending.Name && existing.Date == pending.Date {
			return nil, ErrDuplicateRequest
		}
	}

	out := user.CloneAll(users)
	out[idx].BookingRequests = append(out[idx].BookingRequests, pending)
	return out, nil
}

// ConfirmBooking moves the first pending request made by requester into the
// owner's confirmed bookings.
func ConfirmBooking(users []user.Record, owner, requester, password string) ([]user.Record, error) {
	idx, err := authorize(users, owner, password)
	if err != nil {
		return nil, err
	}

	pos := pendingIndex(users[idx].BookingRequests, requester)
	if pos == -1 {
		return nil, ErrRequestNotFound
	}

	out := user.CloneAll(users)
	rec := &out[idx]
	req := rec.BookingRequests[pos]
	rec.BookingRequests = append(rec.BookingRequests[:pos], rec.BookingRequests[pos+1:]...)
	rec.ConfirmedBookings = append(rec.ConfirmedBookings, user.ConfirmedBooking(req))
	return out, nil
}

// CancelBooking removes the first pending request made by requester.
func CancelBooking(users []user.Record, owner, requester, password string) ([]user.Record, error) {
	idx, err := authorize(users, owner, password)
	if err != nil {
		return nil, err
	}

	pos := pendingIndex(users[idx].BookingRequests, requester)
	if pos == -1 {
		return nil, ErrRequestNotFound
	}

	out := user.CloneAll(users)
	rec := &out[idx]
	rec.BookingRequests = append(rec.BookingRequests[:pos], rec.BookingRequests[pos+1:]...)
	return out, nil
}

// DeleteConfirmedBooking removes the first confirmed booking made by requester.
func DeleteConfirmedBooking(users []user.Record, owner, requester, password string) ([]user.Record, error) {
	idx, err := authorize(users, owner, password)
	if err != nil {
		return nil, err
	}

	pos := -1
	for i, b := range users[idx].ConfirmedBookings {
		if b.Name == requester {
			pos = i
			break
		}
	}
	if pos == -1 {
		return nil, ErrBookingNotFound
	}

	out := user.CloneAll(users)
	rec := &out[idx]
	rec.ConfirmedBookings = append(rec.ConfirmedBookings[:pos], rec.ConfirmedBookings[pos+1:]...)
	return out, nil
}

// FilterVehicles returns the owners matching f, keeping their order.
//
// With a date and no time bound, any confirmed booking on that date excludes
// the owner. With a date and at least one bound, an owner passes when every
// booking on that date ends at or before the queried start, or starts at or
// after the queried end. A missing bound can never satisfy its side.
func FilterVehicles(users []user.Record, f Filter) []user.Record {
	name := strings.ToLower(f.Name)
	timed := f.StartTime != "" || f.EndTime != ""

	out := make([]user.Record, 0, len(users))
	for _, u := range users {
		if name != "" && !strings.Contains(strings.ToLower(u.Username), name) {
			continue
		}
		if f.Date != "" {
			if timed && !freeDuring(u.ConfirmedBookings, f) {
				continue
			}
			if !timed && bookedOn(u.ConfirmedBookings, f.Date) {
				continue
			}
		}
		out = append(out, u.Clone())
	}
	return out
}

// SortForDisplay orders available owners first, keeping the relative order otherwise.
func SortForDisplay(users []user.Record) []user.Record {
	out := user.CloneAll(users)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Available && !out[j].Available
	})
	return out
}

// Weekday returns the English weekday name of a YYYY-MM-DD date, or "Invalid Date".
func Weekday(date string) string {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return "Invalid Date"
	}
	return d.Weekday().String()
}

func authorize(users []user.Record, owner, password string) (int, error) {
	idx := user.IndexOf(users, owner)
	if idx == -1 {
		return -1, ErrOwnerNotFound
	}
	if users[idx].Password != password {
		return -1, ErrIncorrectPassword
	}
	return idx, nil
}

func pendingIndex(requests []user.PendingRequest, requester string) int {
	for i, r := range requests {
		if r.Name == requester {
			return i
		}
	}
	return -1
}

func bookedOn(bookings []user.ConfirmedBooking, date string) bool {
	for _, b := range bookings {
		if b.Date == date {
			return true
		}
	}
	return false
}

func freeDuring(bookings []user.ConfirmedBooking, f Filter) bool {
	queryStart, hasStart := time.Time{}, false
	if f.StartTime != "" {
		queryStart, hasStart = instant(f.Date, f.StartTime, time.UTC)
	}
	queryEnd, hasEnd := time.Time{}, false
	if f.EndTime != "" {
		queryEnd, hasEnd = instant(f.Date, f.EndTime, time.UTC)
	}

	for _, b := range bookings {
		if b.Date != f.Date {
			continue
		}
		start, okStart := instant(b.Date, b.StartTime, time.UTC)
		end, okEnd := instant(b.Date, b.EndTime, time.UTC)

		before := hasEnd && okStart && !queryEnd.After(start)
		after := hasStart && okEnd && !queryStart.Before(end)
		if !before && !after {
			return false
		}
	}
	return true
}

const dateLayout = "2006-01-02"

var clockLayouts = []string{"15:04", "15:04:05"}

// instant combines a date and a time of day into a wall-clock instant in loc.
func instant(date, clock string, loc *time.Location) (time.Time, bool) {
	for _, layout := range clockLayouts {
		t, err := time.ParseInLocation(dateLayout+"T"+layout, date+"T"+clock, loc)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
