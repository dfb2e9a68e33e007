package middleware

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/snipurl/snipurl/internal/handlers"
)

// RequestMeta is a middleware that adds a request ID, client IP, user-agent,
// and referrer to the request context. The referrer feeds click records. A
// request ID already seeded by RequestLog is kept so handler-side logging
// correlates with the access line; one is generated here otherwise.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMetaFromContext(ctx.Context())
		if meta.RequestID == "" {
			meta.RequestID = uuid.NewString()
		}

		meta.ClientIP = extractClientIP(ctx)
		meta.UserAgent = ctx.Header("User-Agent")
		meta.Referrer = ctx.Header("Referer")

		newCtx := handlers.ContextWithRequestMeta(ctx.Context(), meta)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}

func extractClientIP(ctx huma.Context) string {
	// X-Forwarded-For may contain multiple IPs; the first is the client.
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	host := ctx.Host()
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		return host[:idx]
	}

	return host
}
