package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "srimurugan/pkg/errors"
	httputil "srimurugan/pkg/http"
	"srimurugan/pkg/logger"
)

// Recovery turns a handler panic into a 500. http.ErrAbortHandler is
// re-raised for net/http.
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				log.Error("Handler panicked",
					"request_id", RequestIDFrom(r.Context()),
					"panic", fmt.Sprint(rec),
					"method", r.Method,
					"path", r.URL.Path,
					"client", ClientIP(r),
					"stack", string(debug.Stack()),
				)
				if err := httputil.WriteError(w, apperrors.Internal("Internal server error", nil)); err != nil {
					log.Error("failed to write error response", "middleware", "Recovery", "error", err)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
