package dto

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
)

type SignupRequest struct {
	Name            string `json:"name" form:"name"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// Normalize trims the name and lowercases the email.
func (r *SignupRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Values echoes the non-secret fields back to the form.
func (r *SignupRequest) Values() map[string]string {
	return map[string]string{"name": r.Name, "email": r.Email}
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Remember string `json:"remember" form:"remember"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expires_at"`
	User      *models.User `json:"user"`
	Redirect  string       `json:"redirect"`
}

type MessageResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

type AuthFormResponse struct {
	Next string `json:"next"`
}
