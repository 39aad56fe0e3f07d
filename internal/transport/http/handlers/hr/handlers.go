package hrhandler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bizsuite/internal/domain/audit"
	"bizsuite/internal/domain/hr"
	"bizsuite/internal/store"
	"bizsuite/internal/transport/http/api"
	"bizsuite/internal/transport/http/middleware"
	"bizsuite/internal/transport/http/shared"
)

type Handler struct {
	HR    *hr.Service
	Audit *audit.Service
}

func NewHandler(hrSvc *hr.Service, auditSvc *audit.Service) *Handler {
	return &Handler{HR: hrSvc, Audit: auditSvc}
}

var hrWriteRoles = []store.Role{store.RoleAdmin, store.RoleHRManager}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.With(middleware.RequireRoles(hrWriteRoles...)).Post("/", h.handleCreateEmployee)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGetEmployee)
			r.With(middleware.RequireRoles(hrWriteRoles...)).Put("/", h.handleUpdateEmployee)
			r.With(middleware.RequireRoles(hrWriteRoles...)).Delete("/", h.handleDeleteEmployee)
		})
	})
	r.Route("/attendance", func(r chi.Router) {
		r.Get("/", h.handleListAttendance)
		r.Post("/check-in", h.handleCheckIn)
		r.Post("/{attendanceID}/check-out", h.handleCheckOut)
	})
}

type employeePayload struct {
	EmployeeID string  `json:"employeeId" validate:"required"`
	FirstName  string  `json:"firstName" validate:"required"`
	LastName   string  `json:"lastName" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Phone      string  `json:"phone"`
	Department string  `json:"department" validate:"required"`
	Position   string  `json:"position" validate:"required"`
	HireDate   string  `json:"hireDate" validate:"required"`
	ManagerID  string  `json:"managerId"`
	Salary     float64 `json:"salary" validate:"gte=0"`
	Status     string  `json:"status" validate:"omitempty,oneof=ACTIVE ON_LEAVE TERMINATED"`
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload employeePayload
	if err := shared.DecodeValid(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", err.Error(), reqID)
		return
	}
	hireDate, err := shared.ParseDate(payload.HireDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", "invalid hireDate", reqID)
		return
	}

	emp, err := h.HR.CreateEmployee(store.Employee{
		EmployeeID: payload.EmployeeID,
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Email:      payload.Email,
		Phone:      payload.Phone,
		Department: payload.Department,
		Position:   payload.Position,
		HireDate:   hireDate,
		ManagerID:  payload.ManagerID,
		Salary:     payload.Salary,
		Status:     store.EmployeeStatus(payload.Status),
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", reqID)
		return
	}

	principal, _ := middleware.GetUser(r.Context())
	h.Audit.TryRecord(principal.UserID, "CREATE", "employees", emp.ID, nil, emp)
	api.Created(w, emp, reqID)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 200)

	filter := hr.EmployeeFilter{
		Department: r.URL.Query().Get("department"),
		Status:     store.EmployeeStatus(r.URL.Query().Get("status")),
		ManagerID:  r.URL.Query().Get("managerId"),
		Search:     r.URL.Query().Get("search"),
	}
	employees := h.HR.ListEmployees(filter, page.Offset, page.Limit)
	api.Paged(w, employees, h.HR.CountEmployees(filter), reqID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	emp, ok := h.HR.GetEmployee(chi.URLParam(r, "employeeID"))
	if !ok {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

type employeeUpdatePayload struct {
	Phone      *string  `json:"phone"`
	Department *string  `json:"department"`
	Position   *string  `json:"position"`
	ManagerID  *string  `json:"managerId"`
	Salary     *float64 `json:"salary" validate:"omitempty,gte=0"`
	Status     *string  `json:"status" validate:"omitempty,oneof=ACTIVE ON_LEAVE TERMINATED"`
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	var payload employeeUpdatePayload
	if err := shared.DecodeValid(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", err.Error(), reqID)
		return
	}

	before, _ := h.HR.GetEmployee(employeeID)
	emp, err := h.HR.UpdateEmployee(employeeID, func(e *store.Employee) {
		if payload.Phone != nil {
			e.Phone = *payload.Phone
		}
		if payload.Department != nil {
			e.Department = *payload.Department
		}
		if payload.Position != nil {
			e.Position = *payload.Position
		}
		if payload.ManagerID != nil {
			e.ManagerID = *payload.ManagerID
		}
		if payload.Salary != nil {
			e.Salary = *payload.Salary
		}
		if payload.Status != nil {
			e.Status = store.EmployeeStatus(*payload.Status)
		}
	})
	if err != nil {
		if store.IsNotFound(err) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", reqID)
		return
	}

	principal, _ := middleware.GetUser(r.Context())
	h.Audit.TryRecord(principal.UserID, "UPDATE", "employees", emp.ID, before, emp)
	api.Success(w, emp, reqID)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	removed, err := h.HR.DeleteEmployee(employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", reqID)
		return
	}

	if removed {
		principal, _ := middleware.GetUser(r.Context())
		h.Audit.TryRecord(principal.UserID, "DELETE", "employees", employeeID, nil, nil)
	}
	api.Success(w, map[string]bool{"removed": removed}, reqID)
}

type checkInPayload struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Status     string `json:"status" validate:"omitempty,oneof=PRESENT ABSENT LATE HALF_DAY"`
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload checkInPayload
	if err := shared.DecodeValid(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", err.Error(), reqID)
		return
	}

	record, err := h.HR.CheckIn(payload.EmployeeID, time.Now().UTC(), store.AttendanceStatus(payload.Status))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "check_in_failed", "failed to record check-in", reqID)
		return
	}
	api.Created(w, record, reqID)
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	record, err := h.HR.CheckOut(chi.URLParam(r, "attendanceID"), time.Now().UTC())
	if err != nil {
		if store.IsNotFound(err) {
			api.Fail(w, http.StatusNotFound, "attendance_not_found", "attendance record not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "check_out_failed", "failed to record check-out", reqID)
		return
	}
	api.Success(w, record, reqID)
}

func (h *Handler) handleListAttendance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 200)

	from, err := shared.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", "invalid from date", reqID)
		return
	}
	to, err := shared.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", "invalid to date", reqID)
		return
	}
	if !bothZero(from, to) && to.Before(from) && !to.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_request", "to before from", reqID)
		return
	}

	records := h.HR.ListAttendance(hr.AttendanceFilter{
		EmployeeID: r.URL.Query().Get("employeeId"),
		From:       from,
		To:         to,
	}, page.Offset, page.Limit)
	api.Success(w, records, reqID)
}

func bothZero(from, to time.Time) bool {
	return from.IsZero() && to.IsZero()
}
