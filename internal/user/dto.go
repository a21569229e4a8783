package user

import (
	errors "github.com/clearspend/expense-approval/internal"
	"github.com/clearspend/expense-approval/internal/approval"
	"github.com/clearspend/expense-approval/internal/core/common/validation"
)

// CreateUserDTO is an admin creating a member of their own company.
type CreateUserDTO struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	ManagerID *int64 `json:"manager_id,omitempty"`
}

func (dto *CreateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", dto.Email).Required().MaxLength(255)
	v.Field("password", dto.Password).Required().MinLength(8)
	v.Field("name", dto.Name).Required().MaxLength(255)
	v.Field("role", dto.Role).Required().Custom(validateRole)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateUserDTO changes role or manager assignment.
type UpdateUserDTO struct {
	Name      *string `json:"name,omitempty"`
	Role      *string `json:"role,omitempty"`
	ManagerID *int64  `json:"manager_id,omitempty"`
}

func (dto *UpdateUserDTO) Validate() error {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", *dto.Name).Required().MaxLength(255)
	}
	if dto.Role != nil {
		v.Field("role", *dto.Role).Required().Custom(validateRole)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func validateRole(value interface{}) *errors.AppError {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	if !approval.ValidRole(approval.Role(s)) {
		return errors.NewValidationFieldError("role", "role must be 'admin', 'manager' or 'employee'", errors.ErrCodeValidationFailed)
	}
	return nil
}
