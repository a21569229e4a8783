package expense

import (
	"time"

	errors "github.com/clearspend/expense-approval/internal"
	"github.com/clearspend/expense-approval/internal/approval"
	"github.com/clearspend/expense-approval/internal/core/common/validation"
)

// CreateExpenseDTO is a new submission. The currency is taken from the
// company; clients never choose it per expense.
type CreateExpenseDTO struct {
	AmountCents int64     `json:"amount_cents"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Merchant    string    `json:"merchant"`
	ExpenseDate time.Time `json:"expense_date"`
	ReceiptURL  *string   `json:"receipt_url,omitempty"`
	ReceiptName *string   `json:"receipt_name,omitempty"`
}

func (dto *CreateExpenseDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("amount_cents", dto.AmountCents).Required().Positive(errors.ErrCodeInvalidAmount)
	v.Field("category", dto.Category).Required().Custom(func(value interface{}) *errors.AppError {
		if s, ok := value.(string); ok && s != "" && !approval.ValidCategory(s) {
			return errors.NewValidationFieldError("category", "unknown expense category", errors.ErrCodeInvalidCategory)
		}
		return nil
	})
	v.Field("description", dto.Description).Required().MaxLength(1000)
	v.Field("merchant", dto.Merchant).Required().MaxLength(255)
	v.Field("expense_date", dto.ExpenseDate).NotFuture()

	if dto.ExpenseDate.IsZero() {
		return errors.NewValidationFieldError("expense_date", "expense_date is required", errors.ErrCodeInvalidDate)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// RejectExpenseDTO carries the mandatory rejection reason.
type RejectExpenseDTO struct {
	Reason string `json:"reason"`
}

func (dto *RejectExpenseDTO) Validate() error {
	if dto.Reason == "" {
		return errors.NewValidationFieldError("reason", "rejection reason is required", errors.ErrCodeMissingReason)
	}
	if len(dto.Reason) > 1000 {
		return errors.NewValidationFieldError("reason", "reason must not exceed 1000 characters", errors.ErrCodeValidationFailed)
	}
	return nil
}

// ListFilters narrows expense listings. Zero values mean no filter.
type ListFilters struct {
	UserID   int64
	Status   string
	Category string
	From     time.Time
	To       time.Time
	Page     int
	PerPage  int
}

func (f *ListFilters) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 || f.PerPage > 100 {
		f.PerPage = 20
	}
}

func (f *ListFilters) Validate() error {
	if f.Status != "" && !approval.ValidStatus(approval.Status(f.Status)) {
		return errors.NewValidationFieldError("status", "unknown expense status", errors.ErrCodeValidationFailed)
	}
	if f.Category != "" && !approval.ValidCategory(f.Category) {
		return errors.NewValidationFieldError("category", "unknown expense category", errors.ErrCodeInvalidCategory)
	}
	return nil
}

// ListResponse pairs a page of expenses with the total match count.
type ListResponse struct {
	Expenses []Expense `json:"expenses"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PerPage  int       `json:"per_page"`
}

// StatusSummary is a per-status rollup for the dashboard.
type StatusSummary struct {
	Status      string `json:"status"`
	Count       int64  `json:"count"`
	AmountCents int64  `json:"amount_cents"`
}

type Summary struct {
	TotalCount       int64           `json:"total_count"`
	TotalAmountCents int64           `json:"total_amount_cents"`
	ByStatus         []StatusSummary `json:"by_status"`
}
