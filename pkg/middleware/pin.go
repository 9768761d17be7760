package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "srimurugan/pkg/errors"
	httputil "srimurugan/pkg/http"
	"srimurugan/pkg/logger"
)

const AccessPinHeader = "X-Access-Pin"

// PinVerifier checks an access PIN against a bcrypt hash.
type PinVerifier struct {
	hash []byte
}

// NewPinVerifier uses hash when set, otherwise hashes pin with the given cost.
func NewPinVerifier(pin, hash string, cost int) (*PinVerifier, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("invalid access pin hash: %w", err)
		}
		return &PinVerifier{hash: []byte(hash)}, nil
	}
	if pin == "" {
		return nil, fmt.Errorf("access pin is empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash access pin: %w", err)
	}
	return &PinVerifier{hash: h}, nil
}

func (v *PinVerifier) Verify(pin string) bool {
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.hash, []byte(pin)) == nil
}

// RequirePin rejects requests without a valid X-Access-Pin header. Paths
// listed in open are let through untouched.
func RequirePin(v *PinVerifier, log *logger.Logger, open ...string) func(http.Handler) http.Handler {
	openPaths := make(map[string]bool, len(open))
	for _, p := range open {
		openPaths[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if openPaths[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			if !v.Verify(r.Header.Get(AccessPinHeader)) {
				log.Warn("Rejected request without valid access pin",
					"request_id", RequestIDFrom(r.Context()),
					"path", r.URL.Path,
					"client", ClientIP(r),
				)
				if err := httputil.WriteError(w, apperrors.Unauthorized("Invalid or missing access PIN")); err != nil {
					log.Error("failed to write error response", "middleware", "RequirePin", "error", err)
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
