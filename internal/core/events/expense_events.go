package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeExpenseSubmitted = "expense.submitted"
	TypeExpenseApproved  = "expense.approved"
	TypeExpenseRejected  = "expense.rejected"
	TypeExpenseDeleted   = "expense.deleted"
)

func NewExpenseSubmitted(expenseID, userID, companyID, amountCents int64, autoApproved bool) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      TypeExpenseSubmitted,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"expense_id":    expenseID,
			"user_id":       userID,
			"company_id":    companyID,
			"amount_cents":  amountCents,
			"auto_approved": autoApproved,
		},
	}
}

func NewExpenseApproved(expenseID, companyID, approvedBy int64) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      TypeExpenseApproved,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"expense_id":  expenseID,
			"company_id":  companyID,
			"approved_by": approvedBy,
		},
	}
}

func NewExpenseRejected(expenseID, companyID, rejectedBy int64, reason string) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      TypeExpenseRejected,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"expense_id":  expenseID,
			"company_id":  companyID,
			"rejected_by": rejectedBy,
			"reason":      reason,
		},
	}
}

func NewExpenseDeleted(expenseID, companyID, deletedBy int64) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      TypeExpenseDeleted,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"expense_id": expenseID,
			"company_id": companyID,
			"deleted_by": deletedBy,
		},
	}
}
