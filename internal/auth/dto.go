package auth

import (
	"strings"

	"github.com/clearspend/expense-approval/internal/approval"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterDTO covers both flows the setup screen offers: an admin registering
// a new tenant (company fields set) and an employee/manager joining the
// existing one.
type RegisterDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`

	CompanyName            string `json:"company_name,omitempty"`
	Currency               string `json:"currency,omitempty"`
	ApprovalThresholdCents int64  `json:"approval_threshold_cents,omitempty"`
}

// RefreshTokenDTO for refresh token requests
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d *RegisterDTO) Validate() error {
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if len(d.Password) < 6 {
		return ValidationError{Msg: "password must be at least 6 characters"}
	}
	if d.Name == "" {
		return ValidationError{Msg: "name is required"}
	}
	if !approval.ValidRole(approval.Role(d.Role)) {
		return ValidationError{Msg: "role must be admin, manager or employee"}
	}
	if d.ApprovalThresholdCents < 0 {
		return ValidationError{Msg: "approval threshold cannot be negative"}
	}
	return nil
}

func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return ValidationError{Msg: "refresh_token is required"}
	}
	return nil
}

// RegisterResponse returns the created user together with a token pair so the
// setup screen can log straight in.
type RegisterResponse struct {
	User   *User      `json:"user"`
	Tokens AuthTokens `json:"tokens"`
}
