package request

// ByUsernameRequest is a common struct for endpoints that address an owner by username.
type ByUsernameRequest struct {
	Username string `uri:"username" binding:"required"`
}

// CredentialsRequest carries the owner password that gates changes to their
// bookings or profile. An empty password is compared like any other.
type CredentialsRequest struct {
	Password string `json:"password"`
}
