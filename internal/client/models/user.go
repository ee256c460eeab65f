package models

import (
	"errors"
	"strings"
)

// Role is the coarse permission tier of a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Elevated reports whether the role grants access to administrative and
// debug views.
func (r Role) Elevated() bool { return r == RoleAdmin }

// UserProfile is the locally cached snapshot of the authenticated user.
type UserProfile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

var ErrPasswordMismatch = errors.New("passwords do not match")

// Validate checks what the registration form checks before submitting.
func (r RegisterRequest) Validate() error {
	var errs []error
	if strings.TrimSpace(r.Username) == "" {
		errs = append(errs, &ValidationError{Field: "username", Message: "username is required"})
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, &ValidationError{Field: "email", Message: "email is required"})
	}
	if r.Password == "" {
		errs = append(errs, &ValidationError{Field: "password", Message: "password is required"})
	}
	if r.Password != r.ConfirmPassword {
		errs = append(errs, ErrPasswordMismatch)
	}
	return errors.Join(errs...)
}

// AuthResponse is returned by both login and register.
type AuthResponse struct {
	Token    string `json:"token"`
	Type     string `json:"type"`
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

func (a AuthResponse) Profile() UserProfile {
	return UserProfile{ID: a.ID, Username: a.Username, Email: a.Email, Role: a.Role}
}
