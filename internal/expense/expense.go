package expense

import (
	"errors"
	"time"

	"github.com/clearspend/expense-approval/internal/approval"
	expenseDatamodel "github.com/clearspend/expense-approval/internal/core/datamodel/expense"
)

// Expense is a submitted spend awaiting or past resolution. Amounts are
// integer cents; the currency rides along from the company at submission.
type Expense struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	CompanyID       int64           `json:"company_id"`
	AmountCents     int64           `json:"amount_cents"`
	Currency        string          `json:"currency"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Merchant        string          `json:"merchant"`
	ExpenseDate     time.Time       `json:"expense_date"`
	Status          approval.Status `json:"status"`
	ReceiptURL      *string         `json:"receipt_url,omitempty"`
	ReceiptName     *string         `json:"receipt_name,omitempty"`
	SubmittedAt     time.Time       `json:"submitted_at"`
	ApprovedBy      *int64          `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

var ErrExpenseNotFound = errors.New("expense not found")

func (e *Expense) IsPending() bool {
	return e.Status == approval.StatusPending
}

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	return &expenseDatamodel.Expense{
		ID:              e.ID,
		UserID:          e.UserID,
		CompanyID:       e.CompanyID,
		AmountCents:     e.AmountCents,
		Currency:        e.Currency,
		Category:        e.Category,
		Description:     e.Description,
		Merchant:        e.Merchant,
		ExpenseDate:     e.ExpenseDate,
		Status:          string(e.Status),
		ReceiptURL:      e.ReceiptURL,
		ReceiptName:     e.ReceiptName,
		SubmittedAt:     e.SubmittedAt,
		ApprovedBy:      e.ApprovedBy,
		ApprovedAt:      e.ApprovedAt,
		RejectionReason: e.RejectionReason,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func FromDataModel(e *expenseDatamodel.Expense) *Expense {
	return &Expense{
		ID:              e.ID,
		UserID:          e.UserID,
		CompanyID:       e.CompanyID,
		AmountCents:     e.AmountCents,
		Currency:        e.Currency,
		Category:        e.Category,
		Description:     e.Description,
		Merchant:        e.Merchant,
		ExpenseDate:     e.ExpenseDate,
		Status:          approval.Status(e.Status),
		ReceiptURL:      e.ReceiptURL,
		ReceiptName:     e.ReceiptName,
		SubmittedAt:     e.SubmittedAt,
		ApprovedBy:      e.ApprovedBy,
		ApprovedAt:      e.ApprovedAt,
		RejectionReason: e.RejectionReason,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}
