package company

import (
	"errors"
	"time"

	companyDatamodel "github.com/clearspend/expense-approval/internal/core/datamodel/company"
)

// Company is a tenant: its users, rules and expenses all hang off it.
type Company struct {
	ID                     int64     `json:"id"`
	Name                   string    `json:"name"`
	Currency               string    `json:"currency"`
	ApprovalThresholdCents int64     `json:"approval_threshold_cents"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

var ErrCompanyNotFound = errors.New("company not found")

func ToDataModel(c *Company) *companyDatamodel.Company {
	return &companyDatamodel.Company{
		ID:                     c.ID,
		Name:                   c.Name,
		Currency:               c.Currency,
		ApprovalThresholdCents: c.ApprovalThresholdCents,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}

func FromDataModel(c *companyDatamodel.Company) *Company {
	return &Company{
		ID:                     c.ID,
		Name:                   c.Name,
		Currency:               c.Currency,
		ApprovalThresholdCents: c.ApprovalThresholdCents,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}
