// Package kafka publishes outbox messages to Kafka.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"ordering/internal/core/ports"
)

var ErrNoBrokers = errors.New("kafka: at least one broker address is required")

// Publisher writes outbox messages synchronously. The topic is taken from each
// message and the order id is the partition key.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, logger *slog.Logger) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}
	logger = logger.With("component", "kafka_publisher")

	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			BatchTimeout:           10 * time.Millisecond,
			MaxAttempts:            3,
			AllowAutoTopicCreation: true,
			ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
				logger.Error("kafka writer error", "detail", fmt.Sprintf(msg, args...))
			}),
		},
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}
	return p.writer.WriteMessages(ctx, toKafka(messages)...)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func toKafka(messages []ports.OutboxMessage) []kafka.Message {
	out := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		out = append(out, kafka.Message{
			Topic: m.Topic,
			Key:   []byte(m.Key),
			Value: m.Payload,
			Time:  m.CreatedAt,
			Headers: []kafka.Header{
				{Key: "event-id", Value: []byte(m.ID.String())},
				{Key: "event-type", Value: []byte(m.EventType)},
			},
		})
	}
	return out
}
