package benefitshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bizsuite/internal/domain/audit"
	"bizsuite/internal/domain/benefits"
	"bizsuite/internal/store"
	"bizsuite/internal/transport/http/api"
	"bizsuite/internal/transport/http/middleware"
	"bizsuite/internal/transport/http/shared"
)

type Handler struct {
	Benefits *benefits.Service
	Audit    *audit.Service
}

func NewHandler(benefitsSvc *benefits.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Benefits: benefitsSvc, Audit: auditSvc}
}

var benefitsAdminRoles = []store.Role{store.RoleAdmin, store.RoleHRManager}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/benefits", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.RequireRoles(benefitsAdminRoles...)).Post("/", h.handleCreate)
		r.With(middleware.RequireRoles(benefitsAdminRoles...)).Delete("/{benefitID}", h.handleDelete)
		r.Route("/enrollments", func(r chi.Router) {
			r.Get("/", h.handleListEnrollments)
			r.Post("/", h.handleEnroll)
		})
	})
}

type benefitPayload struct {
	Name        string  `json:"name" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=HEALTH_INSURANCE DENTAL RETIREMENT WELLNESS"`
	Description string  `json:"description"`
	MonthlyCost float64 `json:"monthlyCost" validate:"gte=0"`
	Provider    string  `json:"provider"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload benefitPayload
	if err := shared.DecodeValid(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", err.Error(), reqID)
		return
	}

	benefit, err := h.Benefits.CreateBenefit(store.Benefit{
		Name:        payload.Name,
		Type:        store.BenefitType(payload.Type),
		Description: payload.Description,
		MonthlyCost: payload.MonthlyCost,
		Provider:    payload.Provider,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "benefit_create_failed", "failed to create benefit", reqID)
		return
	}

	principal, _ := middleware.GetUser(r.Context())
	h.Audit.TryRecord(principal.UserID, "CREATE", "benefits", benefit.ID, nil, benefit)
	api.Created(w, benefit, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 200)

	list := h.Benefits.ListBenefits(store.BenefitType(r.URL.Query().Get("type")), page.Offset, page.Limit)
	api.Success(w, list, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	benefitID := chi.URLParam(r, "benefitID")

	removed, err := h.Benefits.DeleteBenefit(benefitID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "benefit_delete_failed", "failed to delete benefit", reqID)
		return
	}
	if removed {
		principal, _ := middleware.GetUser(r.Context())
		h.Audit.TryRecord(principal.UserID, "DELETE", "benefits", benefitID, nil, nil)
	}
	api.Success(w, map[string]bool{"removed": removed}, reqID)
}

type benefitEnrollPayload struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	BenefitID  string `json:"benefitId" validate:"required"`
	StartDate  string `json:"startDate"`
}

func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload benefitEnrollPayload
	if err := shared.DecodeValid(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", err.Error(), reqID)
		return
	}
	start, err := shared.ParseDate(payload.StartDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", "invalid startDate", reqID)
		return
	}

	enrollment, err := h.Benefits.Enroll(payload.EmployeeID, payload.BenefitID, start)
	if err != nil {
		if store.IsNotFound(err) {
			api.Fail(w, http.StatusNotFound, "benefit_not_found", "benefit not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "enroll_failed", "failed to enroll", reqID)
		return
	}

	principal, _ := middleware.GetUser(r.Context())
	h.Audit.TryRecord(principal.UserID, "CREATE", "employeeBenefits", enrollment.ID, nil, enrollment)
	api.Created(w, enrollment, reqID)
}

func (h *Handler) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 200)

	enrollments := h.Benefits.ListEnrollments(r.URL.Query().Get("employeeId"), page.Offset, page.Limit)
	api.Success(w, enrollments, reqID)
}
