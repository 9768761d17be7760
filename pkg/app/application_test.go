package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"

	"srimurugan/internal/auth"
	"srimurugan/pkg/client"
	"srimurugan/pkg/config"
	"srimurugan/pkg/logger"
	"srimurugan/pkg/middleware"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/ping", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})
}

func newTestApplication(t *testing.T) (*Application, *bool) {
	t.Helper()

	cfg := &config.Config{
		Port:              "8080",
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    time.Second,
		IdempotencyTTL:    time.Minute,
		MaxRequestSize:    1 << 20,
		ReadTimeout:       time.Second,
		WriteTimeout:      time.Second,
		IdleTimeout:       time.Second,
		ShutdownTimeout:   time.Second,
		Log:               logger.Nop(),
		Client:            client.NewClient(),
	}

	verifier, err := middleware.NewPinVerifier("2468", "", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewPinVerifier() error = %v", err)
	}
	limiter := middleware.NewRateLimiter(5, time.Minute, middleware.ClientIP, cfg.Log)

	a := NewApplication(cfg)
	hookRan := false
	a.OnShutdown(func(context.Context) {
		limiter.Stop()
		hookRan = true
	})
	a.SetApp(verifier, pingHandler{}, auth.NewPinHandler(verifier, limiter, cfg.Log))
	return a, &hookRan
}

func serve(a *Application, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	return rec
}

func TestApplication_Routing(t *testing.T) {
	a, hookRan := newTestApplication(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		headers    map[string]string
		wantStatus int
	}{
		{"health needs no pin", http.MethodGet, "/health", "", nil, http.StatusOK},
		{"api without pin", http.MethodGet, "/api/v1/ping", "", nil, http.StatusUnauthorized},
		{"api with wrong pin", http.MethodGet, "/api/v1/ping", "", map[string]string{middleware.AccessPinHeader: "0000"}, http.StatusUnauthorized},
		{"api with pin", http.MethodGet, "/api/v1/ping", "", map[string]string{middleware.AccessPinHeader: "2468"}, http.StatusOK},
		{"pin check is open", http.MethodPost, auth.PinPath, `{"pin":"2468"}`, nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(a, tt.method, tt.path, tt.body, tt.headers)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}

	a.gracefulShutdown()
	if !*hookRan {
		t.Error("shutdown hook did not run")
	}
}
