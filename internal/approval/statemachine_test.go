package approval_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/clearspend/expense-approval/internal/approval"
)

var _ = Describe("StateMachine", func() {
	Describe("CanTransition", func() {
		It("should allow pending to approved", func() {
			Expect(approval.CanTransition(approval.StatusPending, approval.StatusApproved)).To(BeTrue())
		})

		It("should allow pending to rejected", func() {
			Expect(approval.CanTransition(approval.StatusPending, approval.StatusRejected)).To(BeTrue())
		})

		It("should not move resolved expenses", func() {
			Expect(approval.CanTransition(approval.StatusApproved, approval.StatusRejected)).To(BeFalse())
			Expect(approval.CanTransition(approval.StatusRejected, approval.StatusApproved)).To(BeFalse())
			Expect(approval.CanTransition(approval.StatusApproved, approval.StatusPending)).To(BeFalse())
		})

		It("should treat draft as a dead end", func() {
			Expect(approval.CanTransition(approval.StatusDraft, approval.StatusApproved)).To(BeFalse())
			Expect(approval.CanTransition(approval.StatusDraft, approval.StatusPending)).To(BeFalse())
		})
	})

	Describe("CheckTransition", func() {
		It("should accept approving a pending expense", func() {
			Expect(approval.CheckTransition(approval.StatusPending, approval.ActionApprove)).To(Succeed())
		})

		It("should accept rejecting a pending expense", func() {
			Expect(approval.CheckTransition(approval.StatusPending, approval.ActionReject)).To(Succeed())
		})

		It("should reject re-approving an approved expense", func() {
			err := approval.CheckTransition(approval.StatusApproved, approval.ActionApprove)
			Expect(err).To(MatchError(approval.ErrInvalidTransition))
		})

		It("should reject approving a rejected expense", func() {
			err := approval.CheckTransition(approval.StatusRejected, approval.ActionApprove)
			Expect(err).To(MatchError(approval.ErrInvalidTransition))
		})
	})

	Describe("ResultOf", func() {
		It("should map actions to their terminal statuses", func() {
			Expect(approval.ResultOf(approval.ActionApprove)).To(Equal(approval.StatusApproved))
			Expect(approval.ResultOf(approval.ActionReject)).To(Equal(approval.StatusRejected))
		})
	})

	Describe("CanResolve", func() {
		It("should allow managers and admins", func() {
			Expect(approval.CanResolve(approval.RoleManager)).To(BeTrue())
			Expect(approval.CanResolve(approval.RoleAdmin)).To(BeTrue())
		})

		It("should exclude employees", func() {
			Expect(approval.CanResolve(approval.RoleEmployee)).To(BeFalse())
		})
	})
})
