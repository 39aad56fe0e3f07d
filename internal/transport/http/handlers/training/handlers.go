package traininghandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bizsuite/internal/domain/audit"
	"bizsuite/internal/domain/training"
	"bizsuite/internal/store"
	"bizsuite/internal/transport/http/api"
	"bizsuite/internal/transport/http/middleware"
	"bizsuite/internal/transport/http/shared"
)

type Handler struct {
	Training *training.Service
	Audit    *audit.Service
}

func NewHandler(trainingSvc *training.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Training: trainingSvc, Audit: auditSvc}
}

var trainingAdminRoles = []store.Role{store.RoleAdmin, store.RoleHRManager}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/training", func(r chi.Router) {
		r.Route("/courses", func(r chi.Router) {
			r.Get("/", h.handleListCourses)
			r.With(middleware.RequireRoles(trainingAdminRoles...)).Post("/", h.handleCreateCourse)
			r.With(middleware.RequireRoles(trainingAdminRoles...)).Delete("/{courseID}", h.handleDeleteCourse)
		})
		r.Route("/enrollments", func(r chi.Router) {
			r.Get("/", h.handleListEnrollments)
			r.Post("/", h.handleEnroll)
			r.Post("/{enrollmentID}/complete", h.handleComplete)
		})
	})
}

type coursePayload struct {
	Title         string `json:"title" validate:"required"`
	Category      string `json:"category" validate:"required"`
	Level         string `json:"level" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	DurationHours int    `json:"durationHours" validate:"gte=0"`
}

func (h *Handler) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload coursePayload
	if err := shared.DecodeValid(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", err.Error(), reqID)
		return
	}

	course, err := h.Training.CreateCourse(store.TrainingCourse{
		Title:         payload.Title,
		Category:      payload.Category,
		Level:         store.CourseLevel(payload.Level),
		DurationHours: payload.DurationHours,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "course_create_failed", "failed to create course", reqID)
		return
	}

	principal, _ := middleware.GetUser(r.Context())
	h.Audit.TryRecord(principal.UserID, "CREATE", "trainingCourses", course.ID, nil, course)
	api.Created(w, course, reqID)
}

func (h *Handler) handleListCourses(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 200)

	courses := h.Training.ListCourses(r.URL.Query().Get("category"), page.Offset, page.Limit)
	api.Success(w, courses, reqID)
}

func (h *Handler) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	courseID := chi.URLParam(r, "courseID")

	removed, err := h.Training.DeleteCourse(courseID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "course_delete_failed", "failed to delete course", reqID)
		return
	}
	if removed {
		principal, _ := middleware.GetUser(r.Context())
		h.Audit.TryRecord(principal.UserID, "DELETE", "trainingCourses", courseID, nil, nil)
	}
	api.Success(w, map[string]bool{"removed": removed}, reqID)
}

type enrollPayload struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	CourseID   string `json:"courseId" validate:"required"`
}

func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload enrollPayload
	if err := shared.DecodeValid(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", err.Error(), reqID)
		return
	}

	enrollment, err := h.Training.Enroll(payload.EmployeeID, payload.CourseID)
	if err != nil {
		switch {
		case store.IsNotFound(err):
			api.Fail(w, http.StatusNotFound, "course_not_found", "course not found", reqID)
		case errors.Is(err, training.ErrAlreadyEnrolled):
			api.Fail(w, http.StatusConflict, "already_enrolled", "employee already enrolled", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "enroll_failed", "failed to enroll", reqID)
		}
		return
	}

	principal, _ := middleware.GetUser(r.Context())
	h.Audit.TryRecord(principal.UserID, "CREATE", "employeeTrainings", enrollment.ID, nil, enrollment)
	api.Created(w, enrollment, reqID)
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	enrollment, err := h.Training.Complete(chi.URLParam(r, "enrollmentID"), time.Now().UTC())
	if err != nil {
		if store.IsNotFound(err) {
			api.Fail(w, http.StatusNotFound, "enrollment_not_found", "enrollment not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "complete_failed", "failed to complete enrollment", reqID)
		return
	}
	api.Success(w, enrollment, reqID)
}

func (h *Handler) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 200)

	enrollments := h.Training.ListEnrollments(r.URL.Query().Get("employeeId"), page.Offset, page.Limit)
	api.Success(w, enrollments, reqID)
}
