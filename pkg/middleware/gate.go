package middleware

import (
	"net/http"
	"strings"

	"evently/pkg/auth"
	"evently/pkg/logger"
)

// GateConfig declares which path prefixes require a session and which
// additionally require the admin role. Everything else passes through, with
// the identity attached when a valid token is presented.
type GateConfig struct {
	ProtectedPrefixes []string
	AdminPrefixes     []string
}

func DefaultGateConfig() GateConfig {
	return GateConfig{
		ProtectedPrefixes: []string{"/api/v1/bookings"},
		AdminPrefixes:     []string{"/api/v1/dashboard"},
	}
}

// RequestGate authenticates bearer tokens and enforces the path-prefix
// authorization rules. Role checks inside handlers stay in place; the gate
// is the outer fence, not the only one.
func RequestGate(tokens *auth.TokenService, cfg GateConfig, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, authenticated := authenticate(tokens, r)
			if authenticated {
				r = r.WithContext(auth.WithIdentity(r.Context(), identity))
			}

			path := r.URL.Path

			if hasPrefix(path, cfg.AdminPrefixes) {
				if !authenticated {
					reject(w, http.StatusUnauthorized, "Authentication required")
					return
				}
				if !identity.IsAdmin() {
					log.Warn("Admin path rejected",
						"request_id", RequestIDFromContext(r.Context()),
						"user_id", identity.ID,
						"path", path,
					)
					reject(w, http.StatusForbidden, "Admin privileges required")
					return
				}
			} else if hasPrefix(path, cfg.ProtectedPrefixes) && !authenticated {
				reject(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func authenticate(tokens *auth.TokenService, r *http.Request) (auth.Identity, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return auth.Identity{}, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return auth.Identity{}, false
	}

	identity, err := tokens.Verify(parts[1])
	if err != nil {
		return auth.Identity{}, false
	}
	return identity, true
}

func hasPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func reject(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
