package middleware

import (
	"mime"
	"net/http"

	apperrors "srimurugan/pkg/errors"
	httputil "srimurugan/pkg/http"
	"srimurugan/pkg/logger"
)

const jsonMediaType = "application/json"

// ContentTypeValidation requires a JSON body on POST, PUT and PATCH. A
// request without a body is let through for the handler to reject.
func ContentTypeValidation(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !hasBody(r) {
				next.ServeHTTP(w, r)
				return
			}

			mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil || mediaType != jsonMediaType {
				log.Warn("Rejected request body with wrong Content-Type",
					"request_id", RequestIDFrom(r.Context()),
					"content_type", r.Header.Get("Content-Type"),
					"method", r.Method,
					"path", r.URL.Path,
				)
				if err := httputil.WriteError(w, apperrors.UnsupportedMediaType(jsonMediaType)); err != nil {
					log.Error("failed to write error response", "middleware", "ContentTypeValidation", "error", err)
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func hasBody(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return r.ContentLength != 0
	default:
		return false
	}
}

// MaxRequestSize caps the body at limit bytes. A declared length over the
// limit is refused up front; otherwise decoders see *http.MaxBytesError.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				_ = httputil.WriteError(w, apperrors.PayloadTooLarge())
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
