package company

import "time"

// Company is the companies table row. One row per tenant.
type Company struct {
	ID                     int64     `json:"id" gorm:"primaryKey"`
	Name                   string    `json:"name" gorm:"column:name;not null"`
	Currency               string    `json:"currency" gorm:"column:currency;not null;default:USD"`
	ApprovalThresholdCents int64     `json:"approval_threshold_cents" gorm:"column:approval_threshold_cents;not null;default:0"`
	CreatedAt              time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt              time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Company) TableName() string {
	return "companies"
}
