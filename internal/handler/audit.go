package handler

import (
	"net/http"
	"strconv"

	"github.com/dukerupert/hearth/internal/model"
	"github.com/dukerupert/hearth/internal/store"
)

const defaultAuditLimit = 100

type AuditHandler struct {
	auditStore *store.AuditStore
}

func NewAuditHandler(as *store.AuditStore) *AuditHandler {
	return &AuditHandler{auditStore: as}
}

// List returns the household's audit trail, newest first. The limit query
// parameter caps the page size.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := h.auditStore.List(actor.HouseholdID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list audit log")
		return
	}
	if entries == nil {
		entries = []model.AuditLogEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
