package handlers

import (
	"net/http"

	"github.com/hugh/staffhub/internal/api/dto"
	"github.com/hugh/staffhub/internal/api/middleware"
	"github.com/hugh/staffhub/internal/audit"
)

type LogHandler struct {
	audit *audit.Logger
}

func NewLogHandler(auditLog *audit.Logger) *LogHandler {
	return &LogHandler{audit: auditLog}
}

// List handles GET /api/logs, returning the newest 100 audit records for
// the caller's organisation.
func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	logs, err := h.audit.List(r.Context(), identity.OrganisationID, 100)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list logs"})
		return
	}

	writeJSON(w, http.StatusOK, logs)
}
