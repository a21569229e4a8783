package approval

// Role is the privilege level a user holds within a company.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// privilege orders approver roles; higher wins when several rules match.
var privilege = map[Role]int{
	RoleManager: 1,
	RoleAdmin:   2,
}

func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleManager || r == RoleEmployee
}

// ValidApproverRole reports whether r may be named by a rule as the
// required approver. Employees never approve.
func ValidApproverRole(r Role) bool {
	return r == RoleAdmin || r == RoleManager
}

// Satisfies reports whether an actor with the given role may act as the
// required approver. Admins satisfy a manager requirement, not vice versa.
func Satisfies(actor, required Role) bool {
	return privilege[actor] >= privilege[required]
}

// Expense categories are a fixed catalogue; category rules match against it.
const (
	CategoryTravel    = "travel"
	CategoryMeals     = "meals"
	CategoryOffice    = "office"
	CategoryEquipment = "equipment"
	CategoryOther     = "other"
)

func Categories() []string {
	return []string{CategoryTravel, CategoryMeals, CategoryOffice, CategoryEquipment, CategoryOther}
}

func ValidCategory(category string) bool {
	for _, c := range Categories() {
		if c == category {
			return true
		}
	}
	return false
}

// Condition selects which rule variant applies.
type Condition string

const (
	ConditionAmount   Condition = "amount"
	ConditionCategory Condition = "category"
)

// Rule is the engine's view of a configured approval rule. Exactly one of
// AmountCents or Category carries the rule value, selected by Condition.
type Rule struct {
	Condition    Condition
	AmountCents  int64
	Category     string
	ApproverRole Role
	Enabled      bool
}

func (r Rule) matches(amountCents int64, category string) bool {
	if !r.Enabled {
		return false
	}
	switch r.Condition {
	case ConditionAmount:
		// Strict: an expense equal to the rule value does not match.
		return amountCents > r.AmountCents
	case ConditionCategory:
		return category == r.Category
	}
	return false
}

// Decision is the outcome of evaluating an expense against a company's
// threshold and rule set.
type Decision struct {
	AutoApproved bool `json:"auto_approved"`
	RequiredRole Role `json:"required_role,omitempty"`
}

// Decide determines whether an expense auto-approves and, if not, which
// approver role is required. The result is deterministic regardless of rule
// order: among matching rules the highest-privilege approver role wins, and
// with no match a manager is required.
func Decide(amountCents int64, category string, thresholdCents int64, rules []Rule) Decision {
	// Strictly below the company threshold: no review needed. An amount
	// equal to the threshold still requires review.
	if amountCents < thresholdCents {
		return Decision{AutoApproved: true}
	}

	required := RoleManager
	for _, rule := range rules {
		if !rule.matches(amountCents, category) {
			continue
		}
		if privilege[rule.ApproverRole] > privilege[required] {
			required = rule.ApproverRole
		}
	}

	return Decision{RequiredRole: required}
}

// ApproverFor is the role an actor must satisfy to approve an expense under
// the given decision. An auto-approvable expense that is still pending can be
// resolved by any manager.
func (d Decision) ApproverFor() Role {
	if d.AutoApproved {
		return RoleManager
	}
	return d.RequiredRole
}
