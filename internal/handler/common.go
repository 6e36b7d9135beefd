package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dukerupert/hearth/internal/engine"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeEngineError maps core operation failures to HTTP statuses. The
// authorization failure stays deliberately vague so callers cannot probe
// other households' data.
func writeEngineError(w http.ResponseWriter, err error) {
	var vErr *engine.ValidationError
	var sErr *engine.InvalidStateError
	var cErr *engine.ConflictError

	switch {
	case errors.Is(err, engine.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, "not authorized")
	case errors.Is(err, engine.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, engine.ErrNoItemsSelected):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Error())
	case errors.As(err, &sErr):
		writeError(w, http.StatusConflict, sErr.Error())
	case errors.As(err, &cErr):
		writeError(w, http.StatusConflict, cErr.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
