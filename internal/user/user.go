package user

import (
	"errors"
	"time"

	"github.com/clearspend/expense-approval/internal/approval"
	userDatamodel "github.com/clearspend/expense-approval/internal/core/datamodel/user"
)

// User is a company member. The password hash never leaves the repository.
type User struct {
	ID        int64         `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Role      approval.Role `json:"role"`
	CompanyID int64         `json:"company_id"`
	ManagerID *int64        `json:"manager_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrBadManager   = errors.New("manager must be a manager or admin in the same company")
	ErrSelfDemotion = errors.New("admins cannot change their own role")
	ErrLastAdmin    = errors.New("a company must keep at least one admin")
)

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      approval.Role(u.Role),
		CompanyID: u.CompanyID,
		ManagerID: u.ManagerID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
