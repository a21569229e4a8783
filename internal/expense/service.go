package expense

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/clearspend/expense-approval/internal"
	"github.com/clearspend/expense-approval/internal/approval"
	"github.com/clearspend/expense-approval/internal/auth"
	"github.com/clearspend/expense-approval/internal/company"
	"github.com/clearspend/expense-approval/internal/core/events"
)

type RepositoryAPI interface {
	Create(expense *Expense) error
	GetByID(companyID, id int64) (*Expense, error)
	ListByUser(companyID, userID int64, f ListFilters) ([]Expense, int64, error)
	ListByCompany(companyID int64, f ListFilters) ([]Expense, int64, error)
	// Resolve flips a pending expense to the target status. It reports false
	// when the row was no longer pending, which is how a lost race surfaces.
	Resolve(companyID, id int64, target approval.Status, approvedBy *int64, approvedAt time.Time, reason *string) (bool, error)
	Delete(companyID, id int64) error
	SummaryByUser(companyID, userID int64) (*Summary, error)
	SummaryByCompany(companyID int64) (*Summary, error)
}

// CompanyProvider supplies the threshold and currency at submission time.
type CompanyProvider interface {
	GetCompany(companyID int64) (*company.Company, error)
}

// RuleProvider supplies the company's active rules in engine shape.
type RuleProvider interface {
	EnabledRulesForCompany(companyID int64) ([]approval.Rule, error)
}

type Service struct {
	repo      RepositoryAPI
	companies CompanyProvider
	rules     RuleProvider
	policy    *auth.Policy
	eventBus  *events.EventBus
	logger    *slog.Logger
}

func NewService(
	repo RepositoryAPI,
	companies CompanyProvider,
	rules RuleProvider,
	policy *auth.Policy,
	eventBus *events.EventBus,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:      repo,
		companies: companies,
		rules:     rules,
		policy:    policy,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// SubmitExpense validates, runs the approval decision, and persists the
// expense as pending or, strictly below the company threshold, as approved
// with no approver on record.
func (s *Service) SubmitExpense(ctx context.Context, user *auth.User, dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	comp, err := s.companies.GetCompany(user.CompanyID)
	if err != nil {
		s.logger.Error("submit: failed to load company", "error", err, "company_id", user.CompanyID)
		return nil, errors.NewInternalError("failed to load company", err)
	}

	decision, err := s.decide(user.CompanyID, dto.AmountCents, dto.Category, comp)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	exp := &Expense{
		UserID:      user.ID,
		CompanyID:   user.CompanyID,
		AmountCents: dto.AmountCents,
		Currency:    comp.Currency,
		Category:    dto.Category,
		Description: dto.Description,
		Merchant:    dto.Merchant,
		ExpenseDate: dto.ExpenseDate,
		Status:      approval.StatusPending,
		ReceiptURL:  dto.ReceiptURL,
		ReceiptName: dto.ReceiptName,
		SubmittedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if decision.AutoApproved {
		// Auto-approval has no actor: approved_at is set, approved_by stays null.
		exp.Status = approval.StatusApproved
		approvedAt := now
		exp.ApprovedAt = &approvedAt
	}

	if err := s.repo.Create(exp); err != nil {
		s.logger.Error("submit: failed to persist expense", "error", err, "user_id", user.ID)
		return nil, errors.NewInternalError("failed to create expense", err)
	}

	s.logger.Info("expense submitted",
		"expense_id", exp.ID,
		"user_id", user.ID,
		"company_id", user.CompanyID,
		"amount_cents", exp.AmountCents,
		"status", exp.Status)

	s.eventBus.Publish(ctx, events.NewExpenseSubmitted(exp.ID, user.ID, user.CompanyID, exp.AmountCents, decision.AutoApproved))

	return exp, nil
}

// GetExpense fetches an expense in the caller's company. Employees only see
// their own.
func (s *Service) GetExpense(user *auth.User, id int64) (*Expense, error) {
	exp, err := s.repo.GetByID(user.CompanyID, id)
	if err != nil {
		return nil, s.notFoundOr(err)
	}

	if d := s.policy.CanViewExpense(user, exp.UserID); !d.Allowed {
		return nil, errors.NewForbiddenError(d.Reason, errors.ErrCodeInsufficientRole)
	}

	return exp, nil
}

// ListExpenses scopes the listing by role: employees get their own expenses,
// managers and admins the whole company.
func (s *Service) ListExpenses(user *auth.User, f ListFilters) (*ListResponse, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	f.Normalize()

	var (
		expenses []Expense
		total    int64
		err      error
	)
	if user.IsEmployee() {
		// Employees only ever see their own; a user_id filter cannot widen that.
		f.UserID = 0
		expenses, total, err = s.repo.ListByUser(user.CompanyID, user.ID, f)
	} else {
		expenses, total, err = s.repo.ListByCompany(user.CompanyID, f)
	}
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "company_id", user.CompanyID)
		return nil, errors.NewInternalError("failed to list expenses", err)
	}

	return &ListResponse{
		Expenses: expenses,
		Total:    total,
		Page:     f.Page,
		PerPage:  f.PerPage,
	}, nil
}

// EvaluateExpense re-runs the approval decision for an expense against the
// company's current threshold and rules, without changing anything. The
// preview is for resolvers, not submitters.
func (s *Service) EvaluateExpense(user *auth.User, id int64) (*approval.Decision, error) {
	if d := s.policy.CanResolveExpenses(user); !d.Allowed {
		return nil, errors.NewForbiddenError(d.Reason, errors.ErrCodeInsufficientRole)
	}

	exp, err := s.GetExpense(user, id)
	if err != nil {
		return nil, err
	}

	comp, err := s.companies.GetCompany(user.CompanyID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load company", err)
	}

	decision, err := s.decide(user.CompanyID, exp.AmountCents, exp.Category, comp)
	if err != nil {
		return nil, err
	}
	return decision, nil
}

// ApproveExpense resolves a pending expense. The actor must satisfy the role
// the approval decision requires; a concurrent resolution loses with a
// conflict, not a silent overwrite.
func (s *Service) ApproveExpense(ctx context.Context, user *auth.User, id int64) (*Expense, error) {
	return s.resolve(ctx, user, id, approval.ActionApprove, "")
}

// RejectExpense resolves a pending expense as rejected; the reason is
// mandatory and stored on the expense.
func (s *Service) RejectExpense(ctx context.Context, user *auth.User, id int64, dto RejectExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return s.resolve(ctx, user, id, approval.ActionReject, dto.Reason)
}

func (s *Service) resolve(ctx context.Context, user *auth.User, id int64, action approval.Action, reason string) (*Expense, error) {
	if d := s.policy.CanResolveExpenses(user); !d.Allowed {
		return nil, errors.NewForbiddenError(d.Reason, errors.ErrCodeInsufficientRole)
	}

	exp, err := s.repo.GetByID(user.CompanyID, id)
	if err != nil {
		return nil, s.notFoundOr(err)
	}

	if err := approval.CheckTransition(exp.Status, action); err != nil {
		return nil, errors.NewInvalidTransitionError(
			"expense is " + string(exp.Status) + " and cannot be " + string(approval.ResultOf(action)))
	}

	// Only approval is gated by the decision's required role. Rejection is
	// open to any resolver; the policy check above already excludes employees.
	if action == approval.ActionApprove {
		comp, err := s.companies.GetCompany(user.CompanyID)
		if err != nil {
			return nil, errors.NewInternalError("failed to load company", err)
		}

		decision, err := s.decide(user.CompanyID, exp.AmountCents, exp.Category, comp)
		if err != nil {
			return nil, err
		}
		if !approval.Satisfies(user.Role, decision.ApproverFor()) {
			return nil, errors.NewForbiddenError(
				"this expense requires "+string(decision.ApproverFor())+" approval",
				errors.ErrCodeInsufficientRole)
		}
	}

	target := approval.ResultOf(action)
	now := time.Now()

	// The resolving actor is recorded for rejections too, so approved_by and
	// approved_at are set whenever a human resolved the expense.
	actorID := user.ID
	var reasonPtr *string
	if target == approval.StatusRejected {
		reasonPtr = &reason
	}

	resolved, err := s.repo.Resolve(user.CompanyID, id, target, &actorID, now, reasonPtr)
	if err != nil {
		s.logger.Error("failed to resolve expense", "error", err, "expense_id", id)
		return nil, errors.NewInternalError("failed to resolve expense", err)
	}
	if !resolved {
		// Someone else got there first: the row left pending between our
		// read and the conditional update.
		s.logger.Warn("expense resolution lost race",
			"expense_id", id,
			"actor_id", user.ID,
			"action", action)
		return nil, errors.NewConflictError("expense was already resolved", errors.ErrCodeResolutionLost)
	}

	exp, err = s.repo.GetByID(user.CompanyID, id)
	if err != nil {
		return nil, s.notFoundOr(err)
	}

	s.logger.Info("expense resolved",
		"expense_id", id,
		"status", exp.Status,
		"resolved_by", user.ID)

	if target == approval.StatusApproved {
		s.eventBus.Publish(ctx, events.NewExpenseApproved(id, user.CompanyID, user.ID))
	} else {
		s.eventBus.Publish(ctx, events.NewExpenseRejected(id, user.CompanyID, user.ID, reason))
	}

	return exp, nil
}

// DeleteExpense removes an expense. Owners and admins only.
func (s *Service) DeleteExpense(ctx context.Context, user *auth.User, id int64) error {
	exp, err := s.repo.GetByID(user.CompanyID, id)
	if err != nil {
		return s.notFoundOr(err)
	}

	if d := s.policy.CanDeleteExpense(user, exp.UserID); !d.Allowed {
		return errors.NewForbiddenError(d.Reason, errors.ErrCodeInsufficientRole)
	}

	if err := s.repo.Delete(user.CompanyID, id); err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return errors.NewInternalError("failed to delete expense", err)
	}

	s.logger.Info("expense deleted", "expense_id", id, "deleted_by", user.ID)
	s.eventBus.Publish(ctx, events.NewExpenseDeleted(id, user.CompanyID, user.ID))
	return nil
}

// GetSummary rolls up counts and amounts by status, scoped like listings.
func (s *Service) GetSummary(user *auth.User) (*Summary, error) {
	var (
		summary *Summary
		err     error
	)
	if user.IsEmployee() {
		summary, err = s.repo.SummaryByUser(user.CompanyID, user.ID)
	} else {
		summary, err = s.repo.SummaryByCompany(user.CompanyID)
	}
	if err != nil {
		s.logger.Error("failed to build summary", "error", err, "company_id", user.CompanyID)
		return nil, errors.NewInternalError("failed to build summary", err)
	}
	return summary, nil
}

func (s *Service) decide(companyID, amountCents int64, category string, comp *company.Company) (*approval.Decision, error) {
	rules, err := s.rules.EnabledRulesForCompany(companyID)
	if err != nil {
		s.logger.Error("failed to load approval rules", "error", err, "company_id", companyID)
		return nil, errors.NewInternalError("failed to load approval rules", err)
	}
	decision := approval.Decide(amountCents, category, comp.ApprovalThresholdCents, rules)
	return &decision, nil
}

func (s *Service) notFoundOr(err error) error {
	if err == ErrExpenseNotFound {
		return errors.NewNotFoundError("expense not found", errors.ErrCodeExpenseNotFound)
	}
	return errors.NewInternalError("failed to load expense", err)
}
