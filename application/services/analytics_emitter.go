package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"keepsake-backend/application/ports"
	"keepsake-backend/domain/events"
)

const defaultEmitTimeout = 5 * time.Second

// AnalyticsEmitter pushes domain events to the analytics stream on a
// fire-and-forget basis. Emission happens on a detached goroutine with its
// own timeout so a slow or failing stream never delays or fails the
// operation that raised the events.
type AnalyticsEmitter struct {
	publisher ports.EventPublisher
	logger    *zap.Logger
	timeout   time.Duration
}

// NewAnalyticsEmitter creates an AnalyticsEmitter
func NewAnalyticsEmitter(publisher ports.EventPublisher, logger *zap.Logger) *AnalyticsEmitter {
	return &AnalyticsEmitter{
		publisher: publisher,
		logger:    logger,
		timeout:   defaultEmitTimeout,
	}
}

// Emit publishes events asynchronously. Failures are logged and dropped.
func (e *AnalyticsEmitter) Emit(evts ...events.DomainEvent) {
	if len(evts) == 0 {
		return
	}

	go func() {
		// Detached from the request context: the request may complete
		// before publishing does.
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		defer cancel()

		if err := e.publisher.Publish(ctx, evts...); err != nil {
			e.logger.Warn("Failed to publish analytics events",
				zap.Int("count", len(evts)),
				zap.String("first_type", evts[0].GetEventType()),
				zap.Error(err),
			)
		}
	}()
}
