// Package outboxrepo stores domain events in the outbox table in the same
// transaction as the change that raised them.
package outboxrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// MessageDTO is the outbox_messages table. SentAt stays null until the relay
// has published the row.
type MessageDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventType string     `gorm:"type:varchar(64);not null"`
	Topic     string     `gorm:"type:varchar(255);not null"`
	Key       string     `gorm:"type:varchar(64);not null"`
	Payload   []byte     `gorm:"type:jsonb;not null"`
	CreatedAt time.Time  `gorm:"not null;index:idx_outbox_pending,where:sent_at IS NULL;autoCreateTime:false"`
	SentAt    *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

// Envelope is the JSON body published for every event.
type Envelope struct {
	EventID    string            `json:"eventId"`
	EventType  string            `json:"eventType"`
	OccurredAt time.Time         `json:"occurredAt"`
	Data       order.DomainEvent `json:"data"`
}

// NewMessage wraps event into an outbox message for topic, keyed by the order
// id so events of one order keep their order on the broker.
func NewMessage(event order.DomainEvent, topic string) (ports.OutboxMessage, error) {
	id := kernel.NewUUID()
	payload, err := json.Marshal(Envelope{
		EventID:    id.String(),
		EventType:  event.EventType(),
		OccurredAt: event.OccurredAt(),
		Data:       event,
	})
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	return ports.OutboxMessage{
		ID:        id,
		EventType: event.EventType(),
		Topic:     topic,
		Key:       event.AggregateID().String(),
		Payload:   payload,
		CreatedAt: event.OccurredAt(),
	}, nil
}

func fromPort(m ports.OutboxMessage) MessageDTO {
	return MessageDTO{
		ID:        m.ID.Bytes(),
		EventType: m.EventType,
		Topic:     m.Topic,
		Key:       m.Key,
		Payload:   m.Payload,
		CreatedAt: m.CreatedAt,
	}
}

func toPort(dto MessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	return ports.OutboxMessage{
		ID:        id,
		EventType: dto.EventType,
		Topic:     dto.Topic,
		Key:       dto.Key,
		Payload:   dto.Payload,
		CreatedAt: dto.CreatedAt,
	}, nil
}
