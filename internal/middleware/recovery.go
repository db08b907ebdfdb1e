package middleware

import (
	"net/http"
	"runtime/debug"

	"placementhub/internal/contextutils"
	"placementhub/internal/response"
	"placementhub/internal/services"

	"go.uber.org/zap"
)

// Recovery converts panics into 500 responses so one bad request cannot
// take the process down.
func Recovery(rb *response.Builder, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					contextutils.Logger(r.Context(), logger).Error("Panic recovered",
						zap.Any("panic", rec),
						zap.ByteString("stack", debug.Stack()),
					)
					rb.WriteError(w, r, services.NewInternalError("An unexpected error occurred"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
