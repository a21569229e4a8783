package rule

import (
	errors "github.com/clearspend/expense-approval/internal"
	"github.com/clearspend/expense-approval/internal/approval"
	"github.com/clearspend/expense-approval/internal/core/common/validation"
)

// CreateRuleDTO carries a new approval rule. The value field is tagged by
// condition: amount rules need amount_cents, category rules need category.
type CreateRuleDTO struct {
	Name         string `json:"name"`
	Condition    string `json:"condition"`
	AmountCents  int64  `json:"amount_cents"`
	Category     string `json:"category"`
	ApproverRole string `json:"approver_role"`
	Enabled      *bool  `json:"enabled,omitempty"`
}

func (dto *CreateRuleDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(255)
	v.Field("condition", dto.Condition).Required().Custom(validateCondition)
	v.Field("approver_role", dto.ApproverRole).Required().Custom(validateApproverRole)

	switch approval.Condition(dto.Condition) {
	case approval.ConditionAmount:
		v.Field("amount_cents", dto.AmountCents).Positive(errors.ErrCodeInvalidAmount)
	case approval.ConditionCategory:
		v.Field("category", dto.Category).Required().Custom(validateCategory)
	}

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateRuleDTO updates a rule in place. Absent fields are left unchanged;
// switching the condition requires the matching value field to be present.
type UpdateRuleDTO struct {
	Name         *string `json:"name,omitempty"`
	Condition    *string `json:"condition,omitempty"`
	AmountCents  *int64  `json:"amount_cents,omitempty"`
	Category     *string `json:"category,omitempty"`
	ApproverRole *string `json:"approver_role,omitempty"`
	Enabled      *bool   `json:"enabled,omitempty"`
}

func (dto *UpdateRuleDTO) Validate() error {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", *dto.Name).Required().MaxLength(255)
	}
	if dto.Condition != nil {
		v.Field("condition", *dto.Condition).Required().Custom(validateCondition)
	}
	if dto.ApproverRole != nil {
		v.Field("approver_role", *dto.ApproverRole).Required().Custom(validateApproverRole)
	}
	if dto.AmountCents != nil {
		v.Field("amount_cents", *dto.AmountCents).Positive(errors.ErrCodeInvalidAmount)
	}
	if dto.Category != nil {
		v.Field("category", *dto.Category).Required().Custom(validateCategory)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func validateCondition(value interface{}) *errors.AppError {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	c := approval.Condition(s)
	if c != approval.ConditionAmount && c != approval.ConditionCategory {
		return errors.NewValidationFieldError("condition", "condition must be 'amount' or 'category'", errors.ErrCodeValidationFailed)
	}
	return nil
}

func validateApproverRole(value interface{}) *errors.AppError {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	if !approval.ValidApproverRole(approval.Role(s)) {
		return errors.NewValidationFieldError("approver_role", "approver role must be 'manager' or 'admin'", errors.ErrCodeValidationFailed)
	}
	return nil
}

func validateCategory(value interface{}) *errors.AppError {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	if !approval.ValidCategory(s) {
		return errors.NewValidationFieldError("category", "unknown expense category", errors.ErrCodeInvalidCategory)
	}
	return nil
}
