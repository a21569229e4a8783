package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/clearspend/expense-approval/internal/auth"
	"github.com/clearspend/expense-approval/internal/company"
	"github.com/clearspend/expense-approval/internal/expense"
	"github.com/clearspend/expense-approval/internal/rule"
	"github.com/clearspend/expense-approval/internal/transport/middleware"
	"github.com/clearspend/expense-approval/internal/transport/swagger"
	"github.com/clearspend/expense-approval/internal/user"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth    *auth.Handler
	User    *user.Handler
	Company *company.Handler
	Expense *expense.Handler
	Rule    *rule.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, policy *auth.Policy, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", h.Auth.Register)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// The category catalogue is fixed; no auth required.
		r.Get("/categories", h.Expense.ListCategories)

		// Everything below requires a resolved user.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetCurrentUser)

			pr.Group(func(ur chi.Router) {
				ur.Use(policy.Require(logger, policy.CanViewUsers))
				ur.Get("/users", h.User.ListUsers)
				ur.Get("/users/{id}", h.User.GetUser)
			})
			pr.Group(func(ur chi.Router) {
				ur.Use(policy.Require(logger, policy.CanManageUsers))
				ur.Post("/users", h.User.CreateUser)
				ur.Patch("/users/{id}", h.User.UpdateUser)
			})

			pr.Get("/company", h.Company.GetCompany)
			pr.Group(func(cr chi.Router) {
				cr.Use(policy.Require(logger, policy.CanManageCompany))
				cr.Patch("/company", h.Company.UpdateCompany)
			})

			pr.Route("/rules", func(rr chi.Router) {
				rr.Group(func(vr chi.Router) {
					vr.Use(policy.Require(logger, policy.CanViewRules))
					vr.Get("/", h.Rule.ListRules)
					vr.Get("/{id}", h.Rule.GetRule)
				})
				rr.Group(func(mr chi.Router) {
					mr.Use(policy.Require(logger, policy.CanManageRules))
					mr.Post("/", h.Rule.CreateRule)
					mr.Patch("/{id}", h.Rule.UpdateRule)
					mr.Patch("/{id}/toggle", h.Rule.ToggleRule)
					mr.Delete("/{id}", h.Rule.DeleteRule)
				})
			})

			pr.Route("/expenses", func(er chi.Router) {
				er.Post("/", h.Expense.SubmitExpense)
				er.Get("/", h.Expense.ListExpenses)
				er.Get("/summary", h.Expense.GetSummary)
				er.Get("/{id}", h.Expense.GetExpense)
				er.Delete("/{id}", h.Expense.DeleteExpense)

				// The engine still decides whether this actor's role is
				// enough to approve the specific expense; the middleware
				// only keeps employees out.
				er.Group(func(mr chi.Router) {
					mr.Use(policy.Require(logger, policy.CanResolveExpenses))
					mr.Get("/{id}/evaluation", h.Expense.EvaluateExpense)
					mr.Patch("/{id}/approve", h.Expense.ApproveExpense)
					mr.Patch("/{id}/reject", h.Expense.RejectExpense)
				})
			})
		})
	})
}
