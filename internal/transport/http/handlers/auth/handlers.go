package authhandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bizsuite/internal/auth"
	"bizsuite/internal/domain/audit"
	"bizsuite/internal/store"
	"bizsuite/internal/transport/http/api"
	"bizsuite/internal/transport/http/middleware"
	"bizsuite/internal/transport/http/shared"
)

type Handler struct {
	Auth  *auth.Service
	Audit *audit.Service
}

func NewHandler(authSvc *auth.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Auth: authSvc, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.With(middleware.RequireAuth).Get("/me", h.handleMe)
	r.With(middleware.RequireRoles(store.RoleAdmin)).Post("/users", h.handleCreateUser)
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID       string     `json:"id"`
	Email    string     `json:"email"`
	Role     store.Role `json:"role"`
	IsActive bool       `json:"isActive"`
}

func toUserResponse(u store.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Role: u.Role, IsActive: u.IsActive}
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginPayload
	if err := shared.DecodeValid(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", err.Error(), reqID)
		return
	}

	token, user, err := h.Auth.Login(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrAccountDisabled) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", reqID)
		return
	}

	h.Audit.TryRecord(user.ID, "LOGIN", "users", user.ID, nil, nil)
	api.Success(w, map[string]any{"token": token, "user": toUserResponse(user)}, reqID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	principal, _ := middleware.GetUser(r.Context())

	user, ok := h.Auth.GetUser(principal.UserID)
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	api.Success(w, toUserResponse(user), reqID)
}

type createUserPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=ADMIN HR_MANAGER MANAGER EMPLOYEE"`
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload createUserPayload
	if err := shared.DecodeValid(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", err.Error(), reqID)
		return
	}

	user, err := h.Auth.CreateUser(payload.Email, payload.Password, store.Role(payload.Role))
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			api.Fail(w, http.StatusConflict, "email_taken", "email already registered", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "user_create_failed", "failed to create user", reqID)
		return
	}

	principal, _ := middleware.GetUser(r.Context())
	h.Audit.TryRecord(principal.UserID, "CREATE", "users", user.ID, nil, toUserResponse(user))
	api.Created(w, toUserResponse(user), reqID)
}
