package models

// LoginRequest carries the credentials for auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest carries the fields for auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Surname  string `json:"surname" validate:"required"`
}

// TokenResponse is returned by both auth endpoints.
type TokenResponse struct {
	Token string `json:"token"`
}

// ErrorResponse is the error body returned by the backend.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}
