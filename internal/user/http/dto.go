package http

import (
	"github.com/nekogravitycat/vehicle-booking-board/internal/pkg/request"
	"github.com/nekogravitycat/vehicle-booking-board/internal/user"
)

// OwnerResponse is the shape of owner data returned in API responses.
type OwnerResponse struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

// NewOwnerResponse converts a user.Record to OwnerResponse, dropping the password.
func NewOwnerResponse(r *user.Record) OwnerResponse {
	return OwnerResponse{
		Username: r.Username,
		Phone:    r.Phone,
	}
}

// RegisterRequest defines the payload for owner registration.
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	CountryCode string `json:"country_code" binding:"required"`
	Phone       string `json:"phone"`
}

func (r *RegisterRequest) ToInput() user.RegisterInput {
	return user.RegisterInput{
		Username:    r.Username,
		Password:    r.Password,
		CountryCode: r.CountryCode,
		Phone:       r.Phone,
	}
}

// UpdateDetailsRequest defines the fields replaced via PUT /users/:username.
// Every field is overwritten, so all of them must be sent.
type UpdateDetailsRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	CountryCode string `json:"country_code" binding:"required"`
	Phone       string `json:"phone"`
}

func (r *UpdateDetailsRequest) ToInput(current string) user.UpdateInput {
	return user.UpdateInput{
		CurrentUsername: current,
		NewUsername:     r.Username,
		NewPassword:     r.Password,
		CountryCode:     r.CountryCode,
		NewPhone:        r.Phone,
	}
}

// DeleteProfileRequest must carry the owner's password and an explicit confirmation.
type DeleteProfileRequest struct {
	request.CredentialsRequest
	Confirm bool `json:"confirm"`
}
