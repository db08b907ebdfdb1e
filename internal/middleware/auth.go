package middleware

import (
	"net/http"
	"strings"

	"placementhub/internal/contextutils"
	"placementhub/internal/response"
	"placementhub/internal/services"
)

// Authenticate verifies the bearer token and attaches the caller to the
// request context. Missing or malformed credentials are 401.
func Authenticate(auth services.AuthService, rb *response.Builder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				rb.WriteError(w, r, services.NewUnauthorizedError("Authorization header required"))
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				rb.WriteError(w, r, services.NewUnauthorizedError("Bearer token required"))
				return
			}

			claims, err := auth.VerifyToken(token)
			if err != nil {
				rb.WriteError(w, r, err)
				return
			}

			ctx := contextutils.WithCaller(r.Context(), services.Caller{
				UserID: claims.UserID,
				Role:   claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole refuses callers whose role is not in the allow list.
// Must run after Authenticate.
func RequireRole(rb *response.Builder, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := contextutils.Caller(r.Context())
			if !ok {
				rb.WriteError(w, r, services.NewUnauthorizedError("Authentication required"))
				return
			}
			if !allowed[caller.Role] {
				rb.WriteError(w, r, services.NewForbiddenError("You do not have permission to access this resource"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
