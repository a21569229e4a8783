package company

import (
	"log/slog"
)

type RepositoryAPI interface {
	GetByID(id int64) (*Company, error)
	Update(company *Company) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetCompany(companyID int64) (*Company, error) {
	company, err := s.repo.GetByID(companyID)
	if err != nil {
		s.logger.Error("failed to get company", "error", err, "company_id", companyID)
		return nil, err
	}
	return company, nil
}

// UpdateCompany applies the admin's settings changes. Callers are expected to
// have passed the authorization policy already.
func (s *Service) UpdateCompany(companyID int64, dto UpdateCompanyDTO) (*Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	company, err := s.repo.GetByID(companyID)
	if err != nil {
		s.logger.Error("company not found for update", "error", err, "company_id", companyID)
		return nil, err
	}

	if dto.Name != "" {
		company.Name = dto.Name
	}
	if dto.Currency != "" {
		company.Currency = dto.Currency
	}
	if dto.ApprovalThresholdCents != nil {
		company.ApprovalThresholdCents = *dto.ApprovalThresholdCents
	}

	if err := s.repo.Update(company); err != nil {
		s.logger.Error("failed to update company", "error", err, "company_id", companyID)
		return nil, err
	}

	s.logger.Info("company updated",
		"company_id", companyID,
		"currency", company.Currency,
		"approval_threshold_cents", company.ApprovalThresholdCents)

	return company, nil
}
