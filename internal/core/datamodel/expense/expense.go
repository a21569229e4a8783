package expense

import "time"

// Expense is the expenses table row.
type Expense struct {
	ID              int64      `json:"id" gorm:"primaryKey"`
	UserID          int64      `json:"user_id" gorm:"column:user_id;not null;index"`
	CompanyID       int64      `json:"company_id" gorm:"column:company_id;not null;index"`
	AmountCents     int64      `json:"amount_cents" gorm:"column:amount_cents;not null"`
	Currency        string     `json:"currency" gorm:"column:currency;not null;default:USD"`
	Category        string     `json:"category" gorm:"column:category;not null;index"`
	Description     string     `json:"description" gorm:"column:description;not null"`
	Merchant        string     `json:"merchant" gorm:"column:merchant;not null"`
	ExpenseDate     time.Time  `json:"expense_date" gorm:"column:expense_date;type:date"`
	Status          string     `json:"status" gorm:"column:status;not null;default:pending;index"`
	ReceiptURL      *string    `json:"receipt_url,omitempty" gorm:"column:receipt_url"`
	ReceiptName     *string    `json:"receipt_name,omitempty" gorm:"column:receipt_name"`
	SubmittedAt     time.Time  `json:"submitted_at" gorm:"column:submitted_at;default:now()"`
	ApprovedBy      *int64     `json:"approved_by,omitempty" gorm:"column:approved_by"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty" gorm:"column:approved_at"`
	RejectionReason *string    `json:"rejection_reason,omitempty" gorm:"column:rejection_reason"`
	CreatedAt       time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Expense) TableName() string {
	return "expenses"
}
