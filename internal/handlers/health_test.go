package handlers_test

import (
	"context"
	"testing"

	"github.com/snipurl/snipurl/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Check(t *testing.T) {
	t.Run("reports ok when the store is reachable", func(t *testing.T) {
		checker := handlers.HealthCheckFunc(func(context.Context) error { return nil })
		handler := handlers.NewHealthHandler(checker, "memory")

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Body.Status)
		assert.Equal(t, "memory", resp.Body.Backend)
		assert.Equal(t, "healthy", resp.Body.Store)
	})

	t.Run("reports degraded when the store is unreachable", func(t *testing.T) {
		checker := handlers.HealthCheckFunc(func(context.Context) error { return errMock })
		handler := handlers.NewHealthHandler(checker, "redis")

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "degraded", resp.Body.Status)
		assert.Equal(t, "unhealthy", resp.Body.Store)
	})
}
