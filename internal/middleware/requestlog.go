package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/snipurl/snipurl/internal/handlers"
	"go.uber.org/zap"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLog assigns each request an ID and logs one line with method, path,
// status, and duration. The ID is seeded into the request context so
// RequestMeta picks it up and downstream log lines correlate with this one.
func RequestLog(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()

			r = r.WithContext(handlers.ContextWithRequestMeta(
				r.Context(),
				handlers.RequestMeta{RequestID: requestID},
			))

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			logger.Info("request",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", recorder.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
