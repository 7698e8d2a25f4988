package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event stored in the same transaction as the change
// that raised it, waiting to be published.
type OutboxMessage struct {
	ID        kernel.UUID
	EventType string
	Topic     string
	Key       string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository reads and acknowledges pending outbox messages.
type OutboxRepository interface {
	// FetchPending locks up to limit unsent messages, oldest first. Rows
	// locked by another relay are skipped.
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkSent(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
