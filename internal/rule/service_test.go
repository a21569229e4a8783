package rule_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/clearspend/expense-approval/internal/approval"
	"github.com/clearspend/expense-approval/internal/rule"
)

func TestRule(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rule Suite")
}

type mockRuleRepository struct {
	rules       map[int64]*rule.Rule
	nextID      int64
	createError error
	updateError error
}

func newMockRuleRepository() *mockRuleRepository {
	return &mockRuleRepository{
		rules:  make(map[int64]*rule.Rule),
		nextID: 1,
	}
}

func (m *mockRuleRepository) Create(r *rule.Rule) error {
	if m.createError != nil {
		return m.createError
	}
	r.ID = m.nextID
	m.nextID++
	copied := *r
	m.rules[r.ID] = &copied
	return nil
}

func (m *mockRuleRepository) GetByID(companyID, id int64) (*rule.Rule, error) {
	r, exists := m.rules[id]
	if !exists || r.CompanyID != companyID {
		return nil, rule.ErrRuleNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *mockRuleRepository) ListByCompany(companyID int64) ([]rule.Rule, error) {
	var out []rule.Rule
	for _, r := range m.rules {
		if r.CompanyID == companyID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockRuleRepository) ListEnabledByCompany(companyID int64) ([]rule.Rule, error) {
	var out []rule.Rule
	for _, r := range m.rules {
		if r.CompanyID == companyID && r.Enabled {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockRuleRepository) Update(r *rule.Rule) error {
	if m.updateError != nil {
		return m.updateError
	}
	copied := *r
	m.rules[r.ID] = &copied
	return nil
}

func (m *mockRuleRepository) Delete(companyID, id int64) error {
	delete(m.rules, id)
	return nil
}

var _ = Describe("RuleService", func() {
	var (
		service  *rule.Service
		mockRepo *mockRuleRepository
	)

	BeforeEach(func() {
		mockRepo = newMockRuleRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = rule.NewService(mockRepo, logger)
	})

	Describe("CreateRule", func() {
		Context("with a valid amount rule", func() {
			It("should store the amount and leave the category empty", func() {
				created, err := service.CreateRule(1, rule.CreateRuleDTO{
					Name:         "Large amounts need a manager",
					Condition:    "amount",
					AmountCents:  50000,
					ApproverRole: "manager",
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(created.ID).To(BeNumerically(">", 0))
				Expect(created.Condition).To(Equal(approval.ConditionAmount))
				Expect(created.AmountCents).To(Equal(int64(50000)))
				Expect(created.Category).To(BeEmpty())
				Expect(created.Enabled).To(BeTrue())
			})
		})

		Context("with a valid category rule", func() {
			It("should store the category and leave the amount zero", func() {
				created, err := service.CreateRule(1, rule.CreateRuleDTO{
					Name:         "Travel needs an admin",
					Condition:    "category",
					Category:     approval.CategoryTravel,
					ApproverRole: "admin",
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(created.Condition).To(Equal(approval.ConditionCategory))
				Expect(created.Category).To(Equal(approval.CategoryTravel))
				Expect(created.AmountCents).To(BeZero())
			})
		})

		Context("with invalid input", func() {
			It("should reject an amount rule without a positive amount", func() {
				_, err := service.CreateRule(1, rule.CreateRuleDTO{
					Name:         "Broken",
					Condition:    "amount",
					AmountCents:  0,
					ApproverRole: "manager",
				})

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("amount_cents"))
			})

			It("should reject a category rule with an unknown category", func() {
				_, err := service.CreateRule(1, rule.CreateRuleDTO{
					Name:         "Broken",
					Condition:    "category",
					Category:     "entertainment",
					ApproverRole: "admin",
				})

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("category"))
			})

			It("should reject employee as an approver role", func() {
				_, err := service.CreateRule(1, rule.CreateRuleDTO{
					Name:         "Broken",
					Condition:    "amount",
					AmountCents:  100,
					ApproverRole: "employee",
				})

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("approver"))
			})

			It("should reject an unknown condition", func() {
				_, err := service.CreateRule(1, rule.CreateRuleDTO{
					Name:         "Broken",
					Condition:    "merchant",
					ApproverRole: "manager",
				})

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("condition"))
			})
		})

		Context("with an explicit enabled flag", func() {
			It("should create a disabled rule", func() {
				disabled := false
				created, err := service.CreateRule(1, rule.CreateRuleDTO{
					Name:         "Dormant",
					Condition:    "amount",
					AmountCents:  100,
					ApproverRole: "manager",
					Enabled:      &disabled,
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(created.Enabled).To(BeFalse())
			})
		})
	})

	Describe("UpdateRule", func() {
		var existing *rule.Rule

		BeforeEach(func() {
			var err error
			existing, err = service.CreateRule(1, rule.CreateRuleDTO{
				Name:         "Large amounts need a manager",
				Condition:    "amount",
				AmountCents:  50000,
				ApproverRole: "manager",
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should clear the amount when switching to a category condition", func() {
			condition := "category"
			category := approval.CategoryTravel
			updated, err := service.UpdateRule(1, existing.ID, rule.UpdateRuleDTO{
				Condition: &condition,
				Category:  &category,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Condition).To(Equal(approval.ConditionCategory))
			Expect(updated.Category).To(Equal(approval.CategoryTravel))
			Expect(updated.AmountCents).To(BeZero())
		})

		It("should return not found for a rule in another company", func() {
			_, err := service.UpdateRule(2, existing.ID, rule.UpdateRuleDTO{})
			Expect(err).To(MatchError(rule.ErrRuleNotFound))
		})
	})

	Describe("ToggleRule", func() {
		It("should flip only the enabled flag", func() {
			created, err := service.CreateRule(1, rule.CreateRuleDTO{
				Name:         "Travel needs an admin",
				Condition:    "category",
				Category:     approval.CategoryTravel,
				ApproverRole: "admin",
			})
			Expect(err).ToNot(HaveOccurred())

			toggled, err := service.ToggleRule(1, created.ID, false)

			Expect(err).ToNot(HaveOccurred())
			Expect(toggled.Enabled).To(BeFalse())
			Expect(toggled.Category).To(Equal(approval.CategoryTravel))
			Expect(toggled.ApproverRole).To(Equal(approval.RoleAdmin))
		})
	})

	Describe("EnabledRulesForCompany", func() {
		It("should exclude disabled rules and map into engine shape", func() {
			_, err := service.CreateRule(1, rule.CreateRuleDTO{
				Name:         "Active",
				Condition:    "amount",
				AmountCents:  50000,
				ApproverRole: "manager",
			})
			Expect(err).ToNot(HaveOccurred())

			disabled := false
			_, err = service.CreateRule(1, rule.CreateRuleDTO{
				Name:         "Dormant",
				Condition:    "category",
				Category:     approval.CategoryTravel,
				ApproverRole: "admin",
				Enabled:      &disabled,
			})
			Expect(err).ToNot(HaveOccurred())

			engineRules, err := service.EnabledRulesForCompany(1)

			Expect(err).ToNot(HaveOccurred())
			Expect(engineRules).To(HaveLen(1))
			Expect(engineRules[0].Condition).To(Equal(approval.ConditionAmount))
			Expect(engineRules[0].AmountCents).To(Equal(int64(50000)))
			Expect(engineRules[0].Enabled).To(BeTrue())
		})
	})

	Describe("DeleteRule", func() {
		It("should remove the rule", func() {
			created, err := service.CreateRule(1, rule.CreateRuleDTO{
				Name:         "Short lived",
				Condition:    "amount",
				AmountCents:  100,
				ApproverRole: "manager",
			})
			Expect(err).ToNot(HaveOccurred())

			Expect(service.DeleteRule(1, created.ID)).To(Succeed())

			_, err = service.GetRule(1, created.ID)
			Expect(err).To(MatchError(rule.ErrRuleNotFound))
		})
	})
})
