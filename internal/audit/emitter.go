package audit

import (
	"github.com/snipurl/snipurl/internal/messaging"
	"go.uber.org/zap"
)

// Emitter publishes a backend audit event on a best-effort basis. Malformed
// events and publish failures are logged locally and discarded.
type Emitter func(level, pkg, message string)

// NewEmitter wraps a typed publish function with validation and local
// failure logging.
func NewEmitter(publish messaging.Publish[Event], logger *zap.Logger) Emitter {
	return func(level, pkg, message string) {
		event := &Event{
			Stack:   StackBackend,
			Level:   level,
			Package: pkg,
			Message: message,
		}
		event.Normalize()

		if err := event.Validate(); err != nil {
			logger.Warn("invalid audit event", zap.Error(err))

			return
		}

		if err := publish(event); err != nil {
			logger.Warn("failed to publish audit event", zap.Error(err))
		}
	}
}

// NopEmitter discards every event. Intended for tests.
func NopEmitter() Emitter {
	return func(_, _, _ string) {}
}
