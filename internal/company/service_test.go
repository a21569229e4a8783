package company_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/clearspend/expense-approval/internal/company"
)

func TestCompany(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Company Suite")
}

type mockCompanyRepository struct {
	companies map[int64]*company.Company
}

func (m *mockCompanyRepository) GetByID(id int64) (*company.Company, error) {
	c, exists := m.companies[id]
	if !exists {
		return nil, company.ErrCompanyNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *mockCompanyRepository) Update(c *company.Company) error {
	copied := *c
	m.companies[c.ID] = &copied
	return nil
}

var _ = Describe("CompanyService", func() {
	var (
		service  *company.Service
		mockRepo *mockCompanyRepository
	)

	BeforeEach(func() {
		mockRepo = &mockCompanyRepository{
			companies: map[int64]*company.Company{
				1: {
					ID:                     1,
					Name:                   "Acme Corp",
					Currency:               "USD",
					ApprovalThresholdCents: 100000,
				},
			},
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = company.NewService(mockRepo, logger)
	})

	Describe("UpdateCompany", func() {
		It("should apply partial updates", func() {
			threshold := int64(50000)
			updated, err := service.UpdateCompany(1, company.UpdateCompanyDTO{
				ApprovalThresholdCents: &threshold,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.ApprovalThresholdCents).To(Equal(threshold))
			Expect(updated.Currency).To(Equal("USD"))
			Expect(updated.Name).To(Equal("Acme Corp"))
		})

		It("should allow an explicit zero threshold", func() {
			threshold := int64(0)
			updated, err := service.UpdateCompany(1, company.UpdateCompanyDTO{
				ApprovalThresholdCents: &threshold,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.ApprovalThresholdCents).To(BeZero())
		})

		It("should normalize the currency code", func() {
			updated, err := service.UpdateCompany(1, company.UpdateCompanyDTO{
				Currency: " eur ",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Currency).To(Equal("EUR"))
		})

		It("should reject a malformed currency", func() {
			_, err := service.UpdateCompany(1, company.UpdateCompanyDTO{
				Currency: "DOLLARS",
			})

			Expect(err).To(HaveOccurred())
		})

		It("should reject a negative threshold", func() {
			threshold := int64(-1)
			_, err := service.UpdateCompany(1, company.UpdateCompanyDTO{
				ApprovalThresholdCents: &threshold,
			})

			Expect(err).To(HaveOccurred())
		})

		It("should return not found for a missing company", func() {
			_, err := service.UpdateCompany(999, company.UpdateCompanyDTO{Name: "Ghost"})
			Expect(err).To(MatchError(company.ErrCompanyNotFound))
		})
	})
})
