package leavehandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bizsuite/internal/domain/audit"
	"bizsuite/internal/domain/leave"
	"bizsuite/internal/store"
	"bizsuite/internal/transport/http/api"
	"bizsuite/internal/transport/http/middleware"
	"bizsuite/internal/transport/http/shared"
)

type Handler struct {
	Leave *leave.Service
	Audit *audit.Service
}

func NewHandler(leaveSvc *leave.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Leave: leaveSvc, Audit: auditSvc}
}

var approverRoles = []store.Role{store.RoleAdmin, store.RoleHRManager, store.RoleManager}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave/requests", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleSubmit)
		r.Route("/{leaveID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.With(middleware.RequireRoles(approverRoles...)).Post("/approve", h.handleApprove)
			r.With(middleware.RequireRoles(approverRoles...)).Post("/reject", h.handleReject)
			r.Post("/cancel", h.handleCancel)
		})
	})
}

type submitPayload struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Type       string `json:"type" validate:"required,oneof=ANNUAL SICK CASUAL MATERNITY UNPAID"`
	StartDate  string `json:"startDate" validate:"required"`
	EndDate    string `json:"endDate" validate:"required"`
	Reason     string `json:"reason"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload submitPayload
	if err := shared.DecodeValid(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", err.Error(), reqID)
		return
	}
	start, err := shared.ParseDate(payload.StartDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", "invalid startDate", reqID)
		return
	}
	end, err := shared.ParseDate(payload.EndDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", "invalid endDate", reqID)
		return
	}

	req, err := h.Leave.Submit(store.Leave{
		EmployeeID: payload.EmployeeID,
		Type:       store.LeaveType(payload.Type),
		StartDate:  start,
		EndDate:    end,
		Reason:     payload.Reason,
	})
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "leave_submit_failed", err.Error(), reqID)
		return
	}

	principal, _ := middleware.GetUser(r.Context())
	h.Audit.TryRecord(principal.UserID, "CREATE", "leaves", req.ID, nil, req)
	api.Created(w, req, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 200)

	requests := h.Leave.List(leave.Filter{
		EmployeeID: r.URL.Query().Get("employeeId"),
		Status:     store.LeaveStatus(r.URL.Query().Get("status")),
		Type:       store.LeaveType(r.URL.Query().Get("type")),
	}, page.Offset, page.Limit)
	api.Success(w, requests, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	req, ok := h.Leave.Get(chi.URLParam(r, "leaveID"))
	if !ok {
		api.Fail(w, http.StatusNotFound, "leave_not_found", "leave request not found", reqID)
		return
	}
	api.Success(w, req, reqID)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "APPROVE", func(id, approver string) (store.Leave, error) {
		return h.Leave.Approve(id, approver)
	})
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "REJECT", func(id, approver string) (store.Leave, error) {
		return h.Leave.Reject(id, approver)
	})
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "CANCEL", func(id, _ string) (store.Leave, error) {
		return h.Leave.Cancel(id)
	})
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, action string, fn func(id, approver string) (store.Leave, error)) {
	reqID := middleware.GetRequestID(r.Context())
	principal, _ := middleware.GetUser(r.Context())

	req, err := fn(chi.URLParam(r, "leaveID"), principal.UserID)
	if err != nil {
		if store.IsNotFound(err) {
			api.Fail(w, http.StatusNotFound, "leave_not_found", "leave request not found", reqID)
			return
		}
		var invalid *leave.ErrInvalidTransition
		if errors.As(err, &invalid) {
			api.Fail(w, http.StatusConflict, "invalid_transition", invalid.Error(), reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "leave_update_failed", "failed to update leave request", reqID)
		return
	}

	h.Audit.TryRecord(principal.UserID, action, "leaves", req.ID, nil, req)
	api.Success(w, req, reqID)
}
