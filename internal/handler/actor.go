package handler

import (
	"net/http"

	"github.com/dukerupert/hearth/internal/auth"
)

// actorFrom pulls the authenticated actor off the request context. The auth
// middleware guarantees it is present on protected routes; a missing actor
// means the route was wired without the middleware.
func actorFrom(w http.ResponseWriter, r *http.Request) (auth.Actor, bool) {
	actor, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return auth.Actor{}, false
	}
	return actor, true
}
