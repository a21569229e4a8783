package approval_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/clearspend/expense-approval/internal/approval"
)

func TestApproval(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Approval Suite")
}

var _ = Describe("Decide", func() {
	// Company threshold: USD 1000.00
	const thresholdCents = int64(100000)

	var rules []approval.Rule

	BeforeEach(func() {
		rules = []approval.Rule{
			{
				Condition:    approval.ConditionAmount,
				AmountCents:  50000, // amounts over USD 500 need a manager
				ApproverRole: approval.RoleManager,
				Enabled:      true,
			},
			{
				Condition:    approval.ConditionCategory,
				Category:     approval.CategoryTravel,
				ApproverRole: approval.RoleAdmin,
				Enabled:      true,
			},
		}
	})

	Context("when the amount is strictly below the threshold", func() {
		It("should auto-approve regardless of matching rules", func() {
			// Given an amount below the threshold that would match the travel rule
			decision := approval.Decide(99999, approval.CategoryTravel, thresholdCents, rules)

			// Then the threshold wins and no approver is required
			Expect(decision.AutoApproved).To(BeTrue())
			Expect(decision.RequiredRole).To(BeEmpty())
		})

		It("should auto-approve one cent below the threshold", func() {
			decision := approval.Decide(thresholdCents-1, approval.CategoryMeals, thresholdCents, rules)
			Expect(decision.AutoApproved).To(BeTrue())
		})
	})

	Context("when the amount equals the threshold", func() {
		It("should require review", func() {
			decision := approval.Decide(thresholdCents, approval.CategoryMeals, thresholdCents, rules)
			Expect(decision.AutoApproved).To(BeFalse())
		})
	})

	Context("when a single amount rule matches", func() {
		It("should require the rule's approver role", func() {
			// USD 1200 meal: over the threshold and over the 500 amount rule
			decision := approval.Decide(120000, approval.CategoryMeals, thresholdCents, rules)

			Expect(decision.AutoApproved).To(BeFalse())
			Expect(decision.RequiredRole).To(Equal(approval.RoleManager))
		})

		It("should not match an amount equal to the rule value", func() {
			// Amount rules are strict: an equal amount falls through to the
			// manager default instead of the rule's admin requirement.
			strict := []approval.Rule{{
				Condition:    approval.ConditionAmount,
				AmountCents:  50000,
				ApproverRole: approval.RoleAdmin,
				Enabled:      true,
			}}

			decision := approval.Decide(50000, approval.CategoryMeals, 40000, strict)

			Expect(decision.AutoApproved).To(BeFalse())
			Expect(decision.RequiredRole).To(Equal(approval.RoleManager))
		})

		It("should match one cent over the rule value", func() {
			strict := []approval.Rule{{
				Condition:    approval.ConditionAmount,
				AmountCents:  50000,
				ApproverRole: approval.RoleAdmin,
				Enabled:      true,
			}}

			decision := approval.Decide(50001, approval.CategoryMeals, 40000, strict)
			Expect(decision.RequiredRole).To(Equal(approval.RoleAdmin))
		})
	})

	Context("when several rules match", func() {
		It("should pick the highest-privilege approver role", func() {
			// USD 1200 travel: both the amount rule (manager) and the travel
			// rule (admin) match
			decision := approval.Decide(120000, approval.CategoryTravel, thresholdCents, rules)

			Expect(decision.AutoApproved).To(BeFalse())
			Expect(decision.RequiredRole).To(Equal(approval.RoleAdmin))
		})

		It("should be independent of rule order", func() {
			reversed := []approval.Rule{rules[1], rules[0]}

			forward := approval.Decide(120000, approval.CategoryTravel, thresholdCents, rules)
			backward := approval.Decide(120000, approval.CategoryTravel, thresholdCents, reversed)

			Expect(forward).To(Equal(backward))
		})
	})

	Context("when no rule matches", func() {
		It("should default to requiring a manager", func() {
			decision := approval.Decide(120000, approval.CategoryMeals, thresholdCents, nil)

			Expect(decision.AutoApproved).To(BeFalse())
			Expect(decision.RequiredRole).To(Equal(approval.RoleManager))
		})
	})

	Context("when a matching rule is disabled", func() {
		It("should skip it entirely", func() {
			rules[1].Enabled = false

			// Travel over the threshold: only the amount rule applies now
			decision := approval.Decide(120000, approval.CategoryTravel, thresholdCents, rules)

			Expect(decision.RequiredRole).To(Equal(approval.RoleManager))
		})

		It("should fall back to the default when all matching rules are disabled", func() {
			rules[0].Enabled = false
			rules[1].Enabled = false

			decision := approval.Decide(120000, approval.CategoryTravel, thresholdCents, rules)

			Expect(decision.AutoApproved).To(BeFalse())
			Expect(decision.RequiredRole).To(Equal(approval.RoleManager))
		})
	})

	Context("with a zero threshold", func() {
		It("should never auto-approve", func() {
			decision := approval.Decide(1, approval.CategoryOther, 0, nil)
			Expect(decision.AutoApproved).To(BeFalse())
		})
	})
})

var _ = Describe("Decision", func() {
	Describe("ApproverFor", func() {
		It("should return the required role for a pending decision", func() {
			d := approval.Decision{RequiredRole: approval.RoleAdmin}
			Expect(d.ApproverFor()).To(Equal(approval.RoleAdmin))
		})

		It("should let a manager resolve an auto-approvable expense", func() {
			d := approval.Decision{AutoApproved: true}
			Expect(d.ApproverFor()).To(Equal(approval.RoleManager))
		})
	})
})

var _ = Describe("Satisfies", func() {
	It("should let an admin act where a manager is required", func() {
		Expect(approval.Satisfies(approval.RoleAdmin, approval.RoleManager)).To(BeTrue())
	})

	It("should not let a manager act where an admin is required", func() {
		Expect(approval.Satisfies(approval.RoleManager, approval.RoleAdmin)).To(BeFalse())
	})

	It("should let a role satisfy itself", func() {
		Expect(approval.Satisfies(approval.RoleManager, approval.RoleManager)).To(BeTrue())
		Expect(approval.Satisfies(approval.RoleAdmin, approval.RoleAdmin)).To(BeTrue())
	})

	It("should never let an employee satisfy an approver role", func() {
		Expect(approval.Satisfies(approval.RoleEmployee, approval.RoleManager)).To(BeFalse())
		Expect(approval.Satisfies(approval.RoleEmployee, approval.RoleAdmin)).To(BeFalse())
	})
})

var _ = Describe("Categories", func() {
	It("should accept every catalogue entry", func() {
		for _, c := range approval.Categories() {
			Expect(approval.ValidCategory(c)).To(BeTrue())
		}
	})

	It("should reject unknown categories", func() {
		Expect(approval.ValidCategory("entertainment")).To(BeFalse())
		Expect(approval.ValidCategory("")).To(BeFalse())
	})
})
