package rule

import (
	"log/slog"
	"time"

	"github.com/clearspend/expense-approval/internal/approval"
)

type RepositoryAPI interface {
	Create(rule *Rule) error
	GetByID(companyID, id int64) (*Rule, error)
	ListByCompany(companyID int64) ([]Rule, error)
	ListEnabledByCompany(companyID int64) ([]Rule, error)
	Update(rule *Rule) error
	Delete(companyID, id int64) error
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

func (s *Service) CreateRule(companyID int64, dto CreateRuleDTO) (*Rule, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	enabled := true
	if dto.Enabled != nil {
		enabled = *dto.Enabled
	}

	rule := &Rule{
		CompanyID:    companyID,
		Name:         dto.Name,
		Condition:    approval.Condition(dto.Condition),
		ApproverRole: approval.Role(dto.ApproverRole),
		Enabled:      enabled,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	// Only the value field matching the condition is stored; the other stays zero.
	switch rule.Condition {
	case approval.ConditionAmount:
		rule.AmountCents = dto.AmountCents
	case approval.ConditionCategory:
		rule.Category = dto.Category
	}

	if err := s.repo.Create(rule); err != nil {
		s.logger.Error("failed to create rule", "error", err, "company_id", companyID)
		return nil, err
	}

	s.logger.Info("approval rule created",
		"rule_id", rule.ID,
		"company_id", companyID,
		"condition", rule.Condition,
		"approver_role", rule.ApproverRole)

	return rule, nil
}

func (s *Service) GetRule(companyID, id int64) (*Rule, error) {
	return s.repo.GetByID(companyID, id)
}

func (s *Service) ListRules(companyID int64) ([]Rule, error) {
	rules, err := s.repo.ListByCompany(companyID)
	if err != nil {
		s.logger.Error("failed to list rules", "error", err, "company_id", companyID)
		return nil, err
	}
	return rules, nil
}

func (s *Service) UpdateRule(companyID, id int64, dto UpdateRuleDTO) (*Rule, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	rule, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		rule.Name = *dto.Name
	}
	if dto.Condition != nil {
		rule.Condition = approval.Condition(*dto.Condition)
	}
	if dto.AmountCents != nil {
		rule.AmountCents = *dto.AmountCents
	}
	if dto.Category != nil {
		rule.Category = *dto.Category
	}
	if dto.ApproverRole != nil {
		rule.ApproverRole = approval.Role(*dto.ApproverRole)
	}
	if dto.Enabled != nil {
		rule.Enabled = *dto.Enabled
	}

	// Keep the value columns consistent with the final condition.
	switch rule.Condition {
	case approval.ConditionAmount:
		rule.Category = ""
	case approval.ConditionCategory:
		rule.AmountCents = 0
	}

	if err := s.repo.Update(rule); err != nil {
		s.logger.Error("failed to update rule", "error", err, "rule_id", id)
		return nil, err
	}

	s.logger.Info("approval rule updated", "rule_id", id, "company_id", companyID, "enabled", rule.Enabled)
	return rule, nil
}

// ToggleRule flips the enabled flag without touching the rest of the rule.
func (s *Service) ToggleRule(companyID, id int64, enabled bool) (*Rule, error) {
	rule, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}

	rule.Enabled = enabled
	if err := s.repo.Update(rule); err != nil {
		s.logger.Error("failed to toggle rule", "error", err, "rule_id", id)
		return nil, err
	}

	s.logger.Info("approval rule toggled", "rule_id", id, "company_id", companyID, "enabled", enabled)
	return rule, nil
}

func (s *Service) DeleteRule(companyID, id int64) error {
	if _, err := s.repo.GetByID(companyID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(companyID, id); err != nil {
		s.logger.Error("failed to delete rule", "error", err, "rule_id", id)
		return err
	}
	s.logger.Info("approval rule deleted", "rule_id", id, "company_id", companyID)
	return nil
}

// EnabledRulesForCompany returns the company's active rules in the engine's
// shape, ready to hand to approval.Decide.
func (s *Service) EnabledRulesForCompany(companyID int64) ([]approval.Rule, error) {
	rules, err := s.repo.ListEnabledByCompany(companyID)
	if err != nil {
		return nil, err
	}
	engineRules := make([]approval.Rule, 0, len(rules))
	for i := range rules {
		engineRules = append(engineRules, rules[i].ToEngineRule())
	}
	return engineRules, nil
}
