package company

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/clearspend/expense-approval/internal/auth"
	"github.com/clearspend/expense-approval/internal/transport"
	"github.com/clearspend/expense-approval/pkg/logger"
)

type ServiceAPI interface {
	GetCompany(companyID int64) (*Company, error)
	UpdateCompany(companyID int64, dto UpdateCompanyDTO) (*Company, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// GetCompany returns the caller's own tenant; there is no cross-tenant read.
func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	company, err := h.Service.GetCompany(user.CompanyID)
	if err != nil {
		h.Logger.Error("GetCompany: service error", "error", err, "company_id", user.CompanyID)
		if err == ErrCompanyNotFound {
			h.WriteError(w, http.StatusNotFound, "company not found")
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "failed to get company")
		return
	}

	h.WriteJSON(w, http.StatusOK, company)
}

func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateCompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	company, err := h.Service.UpdateCompany(user.CompanyID, dto)
	if err != nil {
		h.Logger.Error("UpdateCompany: service error", "error", err, "company_id", user.CompanyID)
		switch err {
		case ErrCompanyNotFound:
			h.WriteError(w, http.StatusNotFound, "company not found")
		default:
			h.WriteError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.Logger.Info("UpdateCompany: company updated", "company_id", company.ID, "updated_by", user.ID)
	h.WriteJSON(w, http.StatusOK, company)
}
