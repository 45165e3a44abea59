package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/vehicle-booking-board/internal/booking"
	"github.com/nekogravitycat/vehicle-booking-board/internal/pkg/request"
	"github.com/nekogravitycat/vehicle-booking-board/internal/pkg/response"
	"github.com/nekogravitycat/vehicle-booking-board/internal/user"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// List returns every owner matching the query, available owners first.
func (h *Handler) List(c *gin.Context) {
	var req ListVehiclesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	records, err := h.service.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewListResponse(NewVehicleResponses(records)))
}

// Request submits a booking request against an owner's vehicle.
func (h *Handler) Request(c *gin.Context) {
	var uri request.ByUsernameRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, err)
		return
	}

	var body CreateRequestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	records, err := h.service.Request(c.Request.Context(), uri.Username, booking.NewRequest{
		Name:      body.Name,
		Date:      body.Date,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.NewListResponse(NewVehicleResponses(records)))
}

func (h *Handler) Confirm(c *gin.Context) {
	h.ownerAction(c, h.service.Confirm)
}

func (h *Handler) Cancel(c *gin.Context) {
	h.ownerAction(c, h.service.Cancel)
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	h.ownerAction(c, h.service.DeleteConfirmed)
}

type ownerActionFunc func(ctx context.Context, owner, requester, password string) ([]user.Record, error)

// ownerAction binds the owner from the path and the requester and password
// from the body, then runs action.
func (h *Handler) ownerAction(c *gin.Context, action ownerActionFunc) {
	var uri request.ByUsernameRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, err)
		return
	}

	var body OwnerActionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	records, err := action(c.Request.Context(), uri.Username, body.Requester, body.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewListResponse(NewVehicleResponses(records)))
}
