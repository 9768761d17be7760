package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	apperrors "srimurugan/pkg/errors"
	httputil "srimurugan/pkg/http"
)

const (
	DefaultIdempotencyHeader = "Idempotency-Key"
	ReplayedHeader           = "Idempotent-Replayed"
)

type IdempotencyStore interface {
	Get(key string) (*CachedResponse, bool)
	Set(key string, response *CachedResponse)
	Stop()
}

// CachedResponse is a completed 2xx response and the body hash of the
// request that produced it.
type CachedResponse struct {
	StatusCode  int
	Headers     http.Header
	Body        []byte
	RequestHash string
	StoredAt    time.Time
}

type InMemoryIdempotencyStore struct {
	mu       sync.Mutex
	entries  map[string]*CachedResponse
	ttl      time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewInMemoryIdempotencyStore keeps responses for ttl and sweeps expired
// entries in the background until Stop.
func NewInMemoryIdempotencyStore(ttl time.Duration) *InMemoryIdempotencyStore {
	s := &InMemoryIdempotencyStore{
		entries: make(map[string]*CachedResponse),
		ttl:     ttl,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
	go s.sweep(min(ttl, time.Hour))
	return s
}

func (s *InMemoryIdempotencyStore) expired(r *CachedResponse) bool {
	return s.now().Sub(r.StoredAt) > s.ttl
}

func (s *InMemoryIdempotencyStore) Get(key string) (*CachedResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.expired(r) {
		delete(s.entries, key)
		return nil, false
	}
	return r, true
}

func (s *InMemoryIdempotencyStore) Set(key string, response *CachedResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	response.StoredAt = s.now()
	s.entries[key] = response
}

func (s *InMemoryIdempotencyStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			for key, r := range s.entries {
				if s.expired(r) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

func (s *InMemoryIdempotencyStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (c *captureWriter) WriteHeader(status int) {
	if c.status == 0 {
		c.status = status
	}
	c.ResponseWriter.WriteHeader(status)
}

func (c *captureWriter) Write(b []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}
	c.body.Write(b)
	return c.ResponseWriter.Write(b)
}

// Idempotency makes a retried booking POST safe: a repeat of the same key on
// the same path replays the first 2xx response. Reusing a key with a
// different body is rejected with 422. Other methods pass through.
func Idempotency(store IdempotencyStore, headerName string) func(http.Handler) http.Handler {
	if headerName == "" {
		headerName = DefaultIdempotencyHeader
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(headerName)
			if key == "" || r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}
			key = r.URL.Path + "|" + key

			body, err := io.ReadAll(r.Body)
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					_ = httputil.WriteError(w, apperrors.PayloadTooLarge())
					return
				}
				_ = httputil.WriteError(w, apperrors.InvalidInput("Failed to read request body"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			sum := sha256.Sum256(body)
			hash := hex.EncodeToString(sum[:])

			if cached, ok := store.Get(key); ok {
				if cached.RequestHash != hash {
					_ = httputil.WriteError(w, apperrors.Validation("Idempotency key was already used with a different request", map[string]any{
						"header": headerName,
					}))
					return
				}
				replay(w, cached)
				return
			}

			capture := &captureWriter{ResponseWriter: w}
			next.ServeHTTP(capture, r)

			if capture.status >= 200 && capture.status < 300 {
				store.Set(key, &CachedResponse{
					StatusCode:  capture.status,
					Headers:     w.Header().Clone(),
					Body:        bytes.Clone(capture.body.Bytes()),
					RequestHash: hash,
				})
			}
		})
	}
}

func replay(w http.ResponseWriter, cached *CachedResponse) {
	for key, values := range cached.Headers {
		if key == RequestIDHeader {
			continue
		}
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.Header().Set(ReplayedHeader, "true")
	w.WriteHeader(cached.StatusCode)
	_, _ = w.Write(cached.Body)
}
