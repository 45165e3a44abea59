package http

import (
	"github.com/nekogravitycat/vehicle-booking-board/internal/booking"
	"github.com/nekogravitycat/vehicle-booking-board/internal/pkg/request"
	"github.com/nekogravitycat/vehicle-booking-board/internal/user"
)

// ListVehiclesRequest defines query parameters for listing vehicles.
type ListVehiclesRequest struct {
	Name      string `form:"name"`
	Date      string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	StartTime string `form:"start_time"`
	EndTime   string `form:"end_time"`
}

// ToFilter converts the query into a booking.Filter.
func (r *ListVehiclesRequest) ToFilter() booking.Filter {
	return booking.Filter{
		Name:      r.Name,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// CreateRequestRequest is the booking form. Blank fields are reported by the engine.
type CreateRequestRequest struct {
	Name      string `json:"name"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// OwnerActionRequest identifies the requester an owner acts on.
type OwnerActionRequest struct {
	Requester string `json:"requester" binding:"required"`
	request.CredentialsRequest
}

// BookingResponse is a pending request or confirmed booking as shown to clients.
type BookingResponse struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Day         string `json:"day"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	RequestedAt string `json:"requested_at,omitempty"`
}

// VehicleResponse is an owner's listing. It never carries the password.
type VehicleResponse struct {
	Username          string            `json:"username"`
	Phone             string            `json:"phone"`
	Available         bool              `json:"available"`
	BookingRequests   []BookingResponse `json:"booking_requests"`
	ConfirmedBookings []BookingResponse `json:"confirmed_bookings"`
}

func NewVehicleResponse(r user.Record) VehicleResponse {
	pending := make([]BookingResponse, 0, len(r.BookingRequests))
	for _, req := range r.BookingRequests {
		pending = append(pending, BookingResponse{
			Name:        req.Name,
			Date:        req.Date,
			Day:         booking.Weekday(req.Date),
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			RequestedAt: req.Timestamp,
		})
	}

	confirmed := make([]BookingResponse, 0, len(r.ConfirmedBookings))
	for _, b := range r.ConfirmedBookings {
		confirmed = append(confirmed, BookingResponse{
			Name:      b.Name,
			Date:      b.Date,
			Day:       booking.Weekday(b.Date),
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		})
	}

	return VehicleResponse{
		Username:          r.Username,
		Phone:             r.Phone,
		Available:         r.Available,
		BookingRequests:   pending,
		ConfirmedBookings: confirmed,
	}
}

func NewVehicleResponses(records []user.Record) []VehicleResponse {
	items := make([]VehicleResponse, len(records))
	for i, r := range records {
		items[i] = NewVehicleResponse(r)
	}
	return items
}
