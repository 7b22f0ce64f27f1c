package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tournament/internal/api/apierr"
	"github.com/mcoot/tournament/internal/middleware"
)

// Stack returns the middleware applied to every API route, outermost first.
// Logging runs outside recovery so recovered panics are logged with their
// final status.
func Stack(logger *slog.Logger) []mux.MiddlewareFunc {
	return []mux.MiddlewareFunc{
		middleware.Logging(logger),
		middleware.Recovery(logger, writePanic),
	}
}

// writePanic answers a panicking request with an INFRA_ERROR 500 that carries
// the request id so the log entry can be found
func writePanic(w http.ResponseWriter, r *http.Request, _ error) {
	apierr.WriteError(w, apierr.NewInternalError(middleware.RequestID(r.Context())))
}
