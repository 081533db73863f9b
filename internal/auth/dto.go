package auth

import "github.com/angelmondragon/coilbill-backend/internal/admins"

// LoginRequest captures the admin credentials sent to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=200"`
}

// LoginResponse carries the bearer token and the signed-in admin.
type LoginResponse struct {
	Token string           `json:"token"`
	Admin *admins.AdminDTO `json:"admin"`
}
