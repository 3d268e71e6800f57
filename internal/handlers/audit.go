package handlers

import (
	"net/http"
	"strconv"

	"github.com/advcompro/songvault/internal/repo"
)

// AuditHandler serves the action-log listing.
type AuditHandler struct {
	Repo *repo.ActionLogRepo
}

// ListActions returns recent action-log entries, newest first.
// Query: limit (default 50, max 200), offset (default 0).
func (h *AuditHandler) ListActions(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= 200 {
			limit = val
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if val, err := strconv.Atoi(o); err == nil && val >= 0 {
			offset = val
		}
	}

	entries, err := h.Repo.List(r.Context(), limit, offset)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSONResponse(w, entries, http.StatusOK)
}
