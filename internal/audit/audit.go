package audit

import (
	"context"
	"log/slog"

	"github.com/clearspend/expense-approval/internal/core/events"
)

// Register attaches the audit subscriber to every expense lifecycle event.
// Entries go to the structured log under the "audit" group so they can be
// filtered out of the application stream downstream.
func Register(bus *events.EventBus, logger *slog.Logger) {
	auditLogger := logger.WithGroup("audit")

	handler := func(ctx context.Context, event events.Event) error {
		auditLogger.Info("expense lifecycle event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}

	for _, eventType := range []string{
		events.TypeExpenseSubmitted,
		events.TypeExpenseApproved,
		events.TypeExpenseRejected,
		events.TypeExpenseDeleted,
	} {
		bus.Subscribe(eventType, handler)
	}
}
