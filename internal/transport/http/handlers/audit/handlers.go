package audithandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bizsuite/internal/domain/audit"
	"bizsuite/internal/store"
	"bizsuite/internal/transport/http/api"
	"bizsuite/internal/transport/http/middleware"
	"bizsuite/internal/transport/http/shared"
)

type Handler struct {
	Audit *audit.Service
}

func NewHandler(auditSvc *audit.Service) *Handler {
	return &Handler{Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireRoles(store.RoleAdmin, store.RoleHRManager)).
		Get("/audit", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 500)

	entries, total := h.Audit.List(store.AuditFilter{
		UserID:   r.URL.Query().Get("userId"),
		Action:   r.URL.Query().Get("action"),
		Table:    r.URL.Query().Get("table"),
		RecordID: r.URL.Query().Get("recordId"),
	}, page.Offset, page.Limit)
	api.Paged(w, entries, total, reqID)
}
