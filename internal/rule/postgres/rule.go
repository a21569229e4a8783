package postgres

import (
	"errors"
	"time"

	ruleDatamodel "github.com/clearspend/expense-approval/internal/core/datamodel/rule"
	"github.com/clearspend/expense-approval/internal/rule"
	"gorm.io/gorm"
)

// RuleRepository implements rule.RepositoryAPI using GORM
type RuleRepository struct {
	db *gorm.DB
}

func NewRuleRepository(db *gorm.DB) rule.RepositoryAPI {
	return &RuleRepository{db: db}
}

func (r *RuleRepository) Create(ru *rule.Rule) error {
	row := rule.ToDataModel(ru)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	ru.ID = row.ID
	return nil
}

func (r *RuleRepository) GetByID(companyID, id int64) (*rule.Rule, error) {
	var row ruleDatamodel.ApprovalRule
	err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rule.ErrRuleNotFound
		}
		return nil, err
	}
	return rule.FromDataModel(&row), nil
}

func (r *RuleRepository) ListByCompany(companyID int64) ([]rule.Rule, error) {
	var rows []ruleDatamodel.ApprovalRule
	err := r.db.Where("company_id = ?", companyID).Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	rules := make([]rule.Rule, 0, len(rows))
	for i := range rows {
		rules = append(rules, *rule.FromDataModel(&rows[i]))
	}
	return rules, nil
}

func (r *RuleRepository) ListEnabledByCompany(companyID int64) ([]rule.Rule, error) {
	var rows []ruleDatamodel.ApprovalRule
	err := r.db.Where("company_id = ? AND enabled = ?", companyID, true).Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	rules := make([]rule.Rule, 0, len(rows))
	for i := range rows {
		rules = append(rules, *rule.FromDataModel(&rows[i]))
	}
	return rules, nil
}

func (r *RuleRepository) Update(ru *rule.Rule) error {
	ru.UpdatedAt = time.Now()
	// Save would skip zero values through Updates; use Select to persist
	// cleared value columns when the condition switches.
	return r.db.Model(&ruleDatamodel.ApprovalRule{}).
		Where("id = ? AND company_id = ?", ru.ID, ru.CompanyID).
		Select("name", "condition", "amount_cents", "category", "approver_role", "enabled", "updated_at").
		Updates(rule.ToDataModel(ru)).Error
}

func (r *RuleRepository) Delete(companyID, id int64) error {
	return r.db.Where("id = ? AND company_id = ?", id, companyID).
		Delete(&ruleDatamodel.ApprovalRule{}).Error
}
