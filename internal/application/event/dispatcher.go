package event

import (
	"context"

	"github.com/marketplace/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Dispatcher publishes the pending events of saved aggregates.
// Publishing happens after the write has committed; a failing publish is
// logged and never undoes the write.
type Dispatcher struct {
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewDispatcher creates a dispatcher. A nil publisher turns Dispatch into a
// plain event clear, which keeps services usable without a bus in tests.
func NewDispatcher(publisher shared.EventPublisher, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		publisher: publisher,
		logger:    logger,
	}
}

// Dispatch publishes then clears the events of each aggregate
func (d *Dispatcher) Dispatch(ctx context.Context, aggregates ...shared.AggregateRoot) {
	for _, agg := range aggregates {
		if agg == nil {
			continue
		}
		events := agg.GetDomainEvents()
		agg.ClearDomainEvents()
		if d == nil || d.publisher == nil || len(events) == 0 {
			continue
		}
		if err := d.publisher.Publish(ctx, events...); err != nil {
			d.logger.Error("failed to publish domain events",
				zap.String("aggregate_id", agg.GetID().String()),
				zap.Int("event_count", len(events)),
				zap.Error(err),
			)
		}
	}
}
