package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/vehicle-booking-board/internal/pkg/request"
	"github.com/nekogravitycat/vehicle-booking-board/internal/pkg/response"
	"github.com/nekogravitycat/vehicle-booking-board/internal/user"
)

type UserHandler struct {
	userService user.Service
}

func NewHandler(userService user.Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register handles owner registration.
// It validates the phone number and creates the owner if the username is unique.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	u, err := h.userService.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewOwnerResponse(u))
}

// Get retrieves an owner's public profile.
func (h *UserHandler) Get(c *gin.Context) {
	var uri request.ByUsernameRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, err)
		return
	}

	u, err := h.userService.GetByUsername(c.Request.Context(), uri.Username)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewOwnerResponse(u))
}

// Update replaces an owner's username, password and phone.
// Booking entries made under the old username follow the rename.
func (h *UserHandler) Update(c *gin.Context) {
	var uri request.ByUsernameRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, err)
		return
	}

	var body UpdateDetailsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	u, err := h.userService.UpdateDetails(c.Request.Context(), body.ToInput(uri.Username))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewOwnerResponse(u))
}

// Delete removes an owner and every booking entry made under their username.
func (h *UserHandler) Delete(c *gin.Context) {
	var uri request.ByUsernameRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, err)
		return
	}

	var body DeleteProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	if err := h.userService.DeleteProfile(c.Request.Context(), uri.Username, body.Password, body.Confirm); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
