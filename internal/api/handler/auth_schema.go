package handler

import "time"

type registerRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=8"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// profileResponse never exposes the password hash; the domain type excludes
// it from JSON as well, this type just makes the contract explicit.
type profileResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

type authResponse struct {
	Token   string          `json:"token,omitempty"`
	Profile profileResponse `json:"profile"`
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
}
