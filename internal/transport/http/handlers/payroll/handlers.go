package payrollhandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bizsuite/internal/domain/audit"
	"bizsuite/internal/domain/payroll"
	"bizsuite/internal/store"
	"bizsuite/internal/transport/http/api"
	"bizsuite/internal/transport/http/middleware"
	"bizsuite/internal/transport/http/shared"
)

type Handler struct {
	Payroll *payroll.Service
	Audit   *audit.Service
}

func NewHandler(payrollSvc *payroll.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Payroll: payrollSvc, Audit: auditSvc}
}

var payrollRoles = []store.Role{store.RoleAdmin, store.RoleHRManager}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.RequireRoles(payrollRoles...)).Post("/", h.handleCreate)
		r.Route("/{payrollID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.With(middleware.RequireRoles(payrollRoles...)).Post("/status", h.handleSetStatus)
			r.Get("/payslip", h.handlePayslip)
		})
	})
}

type createPayload struct {
	EmployeeID  string  `json:"employeeId" validate:"required"`
	Month       int     `json:"month" validate:"required,min=1,max=12"`
	Year        int     `json:"year" validate:"required,min=2000"`
	BasicSalary float64 `json:"basicSalary" validate:"gte=0"`
	Allowances  float64 `json:"allowances" validate:"gte=0"`
	Deductions  float64 `json:"deductions" validate:"gte=0"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload createPayload
	if err := shared.DecodeValid(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", err.Error(), reqID)
		return
	}

	entry, err := h.Payroll.CreateEntry(store.Payroll{
		EmployeeID:  payload.EmployeeID,
		Month:       payload.Month,
		Year:        payload.Year,
		BasicSalary: payload.BasicSalary,
		Allowances:  payload.Allowances,
		Deductions:  payload.Deductions,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_create_failed", "failed to create payroll entry", reqID)
		return
	}

	principal, _ := middleware.GetUser(r.Context())
	h.Audit.TryRecord(principal.UserID, "CREATE", "payroll", entry.ID, nil, entry)
	api.Created(w, entry, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 200)

	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	entries := h.Payroll.List(payroll.Filter{
		EmployeeID: r.URL.Query().Get("employeeId"),
		Month:      month,
		Year:       year,
		Status:     store.PayrollStatus(r.URL.Query().Get("status")),
	}, page.Offset, page.Limit)
	api.Success(w, entries, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	entry, ok := h.Payroll.Get(chi.URLParam(r, "payrollID"))
	if !ok {
		api.Fail(w, http.StatusNotFound, "payroll_not_found", "payroll entry not found", reqID)
		return
	}
	api.Success(w, entry, reqID)
}

type statusPayload struct {
	Status string `json:"status" validate:"required,oneof=DRAFT PROCESSED PAID"`
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload statusPayload
	if err := shared.DecodeValid(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", err.Error(), reqID)
		return
	}

	entry, err := h.Payroll.SetStatus(chi.URLParam(r, "payrollID"), store.PayrollStatus(payload.Status))
	if err != nil {
		if store.IsNotFound(err) {
			api.Fail(w, http.StatusNotFound, "payroll_not_found", "payroll entry not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "payroll_update_failed", "failed to update payroll entry", reqID)
		return
	}

	principal, _ := middleware.GetUser(r.Context())
	h.Audit.TryRecord(principal.UserID, "UPDATE", "payroll", entry.ID, nil, entry)
	api.Success(w, entry, reqID)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	pdf, err := h.Payroll.Payslip(chi.URLParam(r, "payrollID"))
	if err != nil {
		if store.IsNotFound(err) {
			api.Fail(w, http.StatusNotFound, "payroll_not_found", "payroll entry not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to render payslip", reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=payslip.pdf")
	_, _ = w.Write(pdf)
}
