package rule

import "time"

// ApprovalRule is the approval_rules table row. The rule value is split into
// typed columns: amount_cents holds the value for amount rules, category for
// category rules, selected by the condition column.
type ApprovalRule struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	CompanyID    int64     `json:"company_id" gorm:"column:company_id;not null;index"`
	Name         string    `json:"name" gorm:"column:name;not null"`
	Condition    string    `json:"condition" gorm:"column:condition;not null"`
	AmountCents  int64     `json:"amount_cents" gorm:"column:amount_cents;default:0"`
	Category     string    `json:"category" gorm:"column:category;default:''"`
	ApproverRole string    `json:"approver_role" gorm:"column:approver_role;not null"`
	Enabled      bool      `json:"enabled" gorm:"column:enabled;default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (ApprovalRule) TableName() string {
	return "approval_rules"
}
