package rule

import (
	"errors"
	"time"

	"github.com/clearspend/expense-approval/internal/approval"
	ruleDatamodel "github.com/clearspend/expense-approval/internal/core/datamodel/rule"
)

// Rule is a company-scoped approval rule. Exactly one of AmountCents or
// Category carries the rule value, selected by Condition.
type Rule struct {
	ID           int64              `json:"id"`
	CompanyID    int64              `json:"company_id"`
	Name         string             `json:"name"`
	Condition    approval.Condition `json:"condition"`
	AmountCents  int64              `json:"amount_cents,omitempty"`
	Category     string             `json:"category,omitempty"`
	ApproverRole approval.Role      `json:"approver_role"`
	Enabled      bool               `json:"enabled"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

var ErrRuleNotFound = errors.New("approval rule not found")

// ToEngineRule projects the stored rule into the evaluation engine's shape.
func (r *Rule) ToEngineRule() approval.Rule {
	return approval.Rule{
		Condition:    r.Condition,
		AmountCents:  r.AmountCents,
		Category:     r.Category,
		ApproverRole: r.ApproverRole,
		Enabled:      r.Enabled,
	}
}

func ToDataModel(r *Rule) *ruleDatamodel.ApprovalRule {
	return &ruleDatamodel.ApprovalRule{
		ID:           r.ID,
		CompanyID:    r.CompanyID,
		Name:         r.Name,
		Condition:    string(r.Condition),
		AmountCents:  r.AmountCents,
		Category:     r.Category,
		ApproverRole: string(r.ApproverRole),
		Enabled:      r.Enabled,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func FromDataModel(r *ruleDatamodel.ApprovalRule) *Rule {
	return &Rule{
		ID:           r.ID,
		CompanyID:    r.CompanyID,
		Name:         r.Name,
		Condition:    approval.Condition(r.Condition),
		AmountCents:  r.AmountCents,
		Category:     r.Category,
		ApproverRole: approval.Role(r.ApproverRole),
		Enabled:      r.Enabled,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
