package auth

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	apperrors "srimurugan/pkg/errors"
	httputil "srimurugan/pkg/http"
	"srimurugan/pkg/logger"
	"srimurugan/pkg/middleware"
)

const PinPath = "/api/v1/auth/pin"

type PinRequest struct {
	Pin string `json:"pin"`
}

type PinResponse struct {
	Authenticated bool `json:"authenticated"`
}

// PinHandler lets the front end check a PIN before storing it for the
// X-Access-Pin header.
type PinHandler struct {
	verifier *middleware.PinVerifier
	limiter  *middleware.RateLimiter
	log      *logger.Logger
}

func NewPinHandler(verifier *middleware.PinVerifier, limiter *middleware.RateLimiter, log *logger.Logger) *PinHandler {
	return &PinHandler{
		verifier: verifier,
		limiter:  limiter,
		log:      log,
	}
}

func (h *PinHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req PinRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Verify", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if !h.verifier.Verify(req.Pin) {
		h.log.Warn("Invalid access pin attempt",
			"request_id", middleware.RequestIDFrom(r.Context()),
			"client", middleware.ClientIP(r),
		)
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Invalid PIN")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Verify", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, PinResponse{Authenticated: true}); err != nil {
		h.log.Error("failed to write success response", "handler", "Verify", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PinHandler) RegisterRoutes(router *httprouter.Router) {
	router.Handler(http.MethodPost, PinPath, middleware.RateLimit(h.limiter)(http.HandlerFunc(h.Verify)))
}
