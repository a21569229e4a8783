package approval

import "errors"

// Status is an expense's lifecycle state.
//
// draft is reserved for future draft-save behavior: it is a valid stored
// state but the submission flow never produces it and no transition leads
// out of it.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Action is a resolution request against a pending expense.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

var ErrInvalidTransition = errors.New("invalid expense status transition")

// ResultOf returns the status an action produces.
func ResultOf(action Action) Status {
	if action == ActionReject {
		return StatusRejected
	}
	return StatusApproved
}

// CanTransition reports whether moving from current to target is legal.
// Only pending expenses move, and only to approved or rejected.
func CanTransition(current, target Status) bool {
	if current != StatusPending {
		return false
	}
	return target == StatusApproved || target == StatusRejected
}

// CheckTransition validates a requested action against the current status.
func CheckTransition(current Status, action Action) error {
	if !CanTransition(current, ResultOf(action)) {
		return ErrInvalidTransition
	}
	return nil
}

// CanResolve reports whether the actor role may resolve expenses at all,
// regardless of which approver a specific expense requires.
func CanResolve(actor Role) bool {
	return actor == RoleAdmin || actor == RoleManager
}
