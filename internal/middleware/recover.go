package middleware

import (
	"fmt"
	"net/http"

	"github.com/snipurl/snipurl/internal/audit"
	"go.uber.org/zap"
)

// Recover is the outer boundary for unhandled faults: it converts a panic
// into a 500 with the API's flat error body and reports it to the audit
// sink at fatal severity. The process never crashes on a request fault.
func Recover(logger *zap.Logger, emit audit.Emitter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				emit(audit.LevelFatal, audit.PackageHandler, fmt.Sprintf("Unhandled error: %v", rec))

				logger.Error("panic recovered",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
