package postgres

import (
	"errors"
	"time"

	"github.com/clearspend/expense-approval/internal/approval"
	expenseDatamodel "github.com/clearspend/expense-approval/internal/core/datamodel/expense"
	"github.com/clearspend/expense-approval/internal/expense"
	"gorm.io/gorm"
)

// ExpenseRepository implements expense.RepositoryAPI using GORM
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.RepositoryAPI {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(e *expense.Expense) error {
	row := expense.ToDataModel(e)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	e.ID = row.ID
	return nil
}

func (r *ExpenseRepository) GetByID(companyID, id int64) (*expense.Expense, error) {
	var row expenseDatamodel.Expense
	err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expense.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense.FromDataModel(&row), nil
}

func (r *ExpenseRepository) ListByUser(companyID, userID int64, f expense.ListFilters) ([]expense.Expense, int64, error) {
	query := r.db.Model(&expenseDatamodel.Expense{}).
		Where("company_id = ? AND user_id = ?", companyID, userID)
	return r.list(query, f)
}

func (r *ExpenseRepository) ListByCompany(companyID int64, f expense.ListFilters) ([]expense.Expense, int64, error) {
	query := r.db.Model(&expenseDatamodel.Expense{}).
		Where("company_id = ?", companyID)
	return r.list(query, f)
}

func (r *ExpenseRepository) list(query *gorm.DB, f expense.ListFilters) ([]expense.Expense, int64, error) {
	if f.UserID > 0 {
		query = query.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if !f.From.IsZero() {
		query = query.Where("expense_date >= ?", f.From)
	}
	if !f.To.IsZero() {
		query = query.Where("expense_date <= ?", f.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []expenseDatamodel.Expense
	offset := (f.Page - 1) * f.PerPage
	err := query.Order("submitted_at DESC, id DESC").
		Limit(f.PerPage).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	expenses := make([]expense.Expense, 0, len(rows))
	for i := range rows {
		expenses = append(expenses, *expense.FromDataModel(&rows[i]))
	}
	return expenses, total, nil
}

// Resolve conditionally updates a pending expense to the target status. The
// status guard in the WHERE clause is what makes concurrent resolutions safe:
// exactly one update sees the row while it is still pending.
func (r *ExpenseRepository) Resolve(companyID, id int64, target approval.Status, approvedBy *int64, approvedAt time.Time, reason *string) (bool, error) {
	updates := map[string]interface{}{
		"status":      string(target),
		"approved_by": approvedBy,
		"approved_at": approvedAt,
		"updated_at":  time.Now(),
	}
	if target == approval.StatusRejected {
		updates["rejection_reason"] = reason
	}

	result := r.db.Model(&expenseDatamodel.Expense{}).
		Where("id = ? AND company_id = ? AND status = ?", id, companyID, string(approval.StatusPending)).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ExpenseRepository) Delete(companyID, id int64) error {
	return r.db.Where("id = ? AND company_id = ?", id, companyID).
		Delete(&expenseDatamodel.Expense{}).Error
}

func (r *ExpenseRepository) SummaryByUser(companyID, userID int64) (*expense.Summary, error) {
	query := r.db.Model(&expenseDatamodel.Expense{}).
		Where("company_id = ? AND user_id = ?", companyID, userID)
	return r.summarize(query)
}

func (r *ExpenseRepository) SummaryByCompany(companyID int64) (*expense.Summary, error) {
	query := r.db.Model(&expenseDatamodel.Expense{}).
		Where("company_id = ?", companyID)
	return r.summarize(query)
}

func (r *ExpenseRepository) summarize(query *gorm.DB) (*expense.Summary, error) {
	var rows []expense.StatusSummary
	err := query.
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount_cents), 0) AS amount_cents").
		Group("status").
		Order("status ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &expense.Summary{ByStatus: rows}
	for _, row := range rows {
		summary.TotalCount += row.Count
		summary.TotalAmountCents += row.AmountCents
	}
	return summary, nil
}
