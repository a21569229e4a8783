package auth

import (
	"log/slog"
	"net/http"

	"github.com/clearspend/expense-approval/internal/approval"
)

// PolicyDecision is an allow/deny with the reason a denial carries back to
// the caller. Every mutating operation consults the policy instead of
// re-implementing role checks per handler.
type PolicyDecision struct {
	Allowed bool
	Reason  string
}

func allow() PolicyDecision {
	return PolicyDecision{Allowed: true}
}

func deny(reason string) PolicyDecision {
	return PolicyDecision{Allowed: false, Reason: reason}
}

// Policy is the single authorization point for role-gated actions.
type Policy struct{}

func NewPolicy() *Policy {
	return &Policy{}
}

// CanResolveExpenses gates approve/reject. Which approver a specific expense
// requires is the approval engine's business; this only excludes employees.
func (p *Policy) CanResolveExpenses(u *User) PolicyDecision {
	if approval.CanResolve(u.Role) {
		return allow()
	}
	return deny("manager or admin role required to resolve expenses")
}

func (p *Policy) CanViewCompanyExpenses(u *User) PolicyDecision {
	if u.IsAdmin() || u.IsManager() {
		return allow()
	}
	return deny("manager or admin role required to view company expenses")
}

func (p *Policy) CanViewExpense(u *User, ownerID int64) PolicyDecision {
	if u.ID == ownerID || u.IsAdmin() || u.IsManager() {
		return allow()
	}
	return deny("expense belongs to another user")
}

// CanDeleteExpense: the owning employee or an admin, regardless of status.
func (p *Policy) CanDeleteExpense(u *User, ownerID int64) PolicyDecision {
	if u.ID == ownerID || u.IsAdmin() {
		return allow()
	}
	return deny("only the owner or an admin may delete an expense")
}

func (p *Policy) CanManageCompany(u *User) PolicyDecision {
	if u.IsAdmin() {
		return allow()
	}
	return deny("admin role required to update company settings")
}

func (p *Policy) CanManageRules(u *User) PolicyDecision {
	if u.IsAdmin() {
		return allow()
	}
	return deny("admin role required to manage approval rules")
}

func (p *Policy) CanViewRules(u *User) PolicyDecision {
	if u.IsAdmin() || u.IsManager() {
		return allow()
	}
	return deny("manager or admin role required to view approval rules")
}

func (p *Policy) CanManageUsers(u *User) PolicyDecision {
	if u.IsAdmin() {
		return allow()
	}
	return deny("admin role required to manage users")
}

func (p *Policy) CanViewUsers(u *User) PolicyDecision {
	if u.IsAdmin() || u.IsManager() {
		return allow()
	}
	return deny("manager or admin role required to view users")
}

// Require wraps a policy check as chi middleware.
func (p *Policy) Require(logger *slog.Logger, check func(*User) PolicyDecision) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			decision := check(user)
			if !decision.Allowed {
				logger.WarnContext(r.Context(), "access denied",
					"user_id", user.ID,
					"role", user.Role,
					"reason", decision.Reason)
				http.Error(w, "Forbidden: "+decision.Reason, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
