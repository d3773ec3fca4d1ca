package producer

import (
	"context"

	"github.com/HirziKhalis/hrms-system/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// Keyed by aggregate so all events for one leave request land on the
// same partition, preserving their order.
func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	return writer.WriteMessages(ctx, kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
		},
	})
}
