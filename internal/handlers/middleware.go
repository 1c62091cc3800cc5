package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"otiyot/internal/security"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	gate *security.ParentGate
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(gate *security.ParentGate) *Middleware {
	return &Middleware{gate: gate}
}

// Logging logs every request with its duration
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}

// RequireParent guards destructive and data-transfer routes behind a valid
// parent gate token from the Authorization header
func (m *Middleware) RequireParent(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			http.Error(w, "Parent access required", http.StatusUnauthorized)
			return
		}
		if err := m.gate.Verify(token); err != nil {
			respondWithError(w, http.StatusUnauthorized, "Parent access required", "Invalid parent token", err)
			return
		}
		next(w, r)
	}
}
