package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// PanicHandler writes the response for a request whose handler panicked
type PanicHandler func(w http.ResponseWriter, r *http.Request, err error)

// Recovery turns a handler panic into a logged error and a PanicHandler
// response. http.ErrAbortHandler is re-raised so net/http aborts the
// connection. The handler is skipped when headers were already sent through
// Logging's ResponseWriter.
func Recovery(logger *slog.Logger, handler PanicHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				err := panicError(rec)
				if errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				logger.LogAttrs(r.Context(), slog.LevelError, "panic recovered",
					slog.String("error", err.Error()),
					slog.String("stack", string(debug.Stack())),
					slog.String("request_id", RequestID(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)

				if rw, ok := w.(*ResponseWriter); ok && rw.Written() {
					return
				}
				handler(w, r, err)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func panicError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", rec)
}
