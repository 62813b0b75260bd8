package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"nnx1/internal/service"
)

type contextKey string

const (
	AdminIDKey   contextKey = "adminId"
	SessionIDKey contextKey = "sessionId"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireAdmin validates the admin JWT from the Authorization header
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateAdminToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), AdminIDKey, claims.AdminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSession validates a session JWT from the Authorization header or the
// token query param. The token must belong to the {sessionId} in the path.
func (m *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			token = r.URL.Query().Get("token")
		}
		if token == "" {
			http.Error(w, `{"error":"missing authorization"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateSessionToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}
		if id, ok := mux.Vars(r)["sessionId"]; ok && id != claims.SessionID {
			http.Error(w, `{"error":"token not valid for this session"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, claims.SessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalSession attaches the session from a Bearer token when one is sent.
// Requests without a token pass through; a bad token is rejected.
func (m *AuthMiddleware) OptionalSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.authSvc.ValidateSessionToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), SessionIDKey, claims.SessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAdminID extracts the admin ID from context
func GetAdminID(ctx context.Context) string {
	if v, ok := ctx.Value(AdminIDKey).(string); ok {
		return v
	}
	return ""
}

// GetSessionID extracts the session ID from context
func GetSessionID(ctx context.Context) string {
	if v, ok := ctx.Value(SessionIDKey).(string); ok {
		return v
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
