// Package notifier delivers order notifications. KafkaNotifier publishes them to a
// topic consumed by the notification service; LogNotifier writes them to the log
// when no broker is configured.
package notifier

import (
	"context"
	"encoding/json"
	"time"

	"marketplace/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

var producerTracer = otel.Tracer("notifier/kafka")

// Message is the JSON value written for one notification. The message key is the
// recipient id, so one recipient's notifications stay ordered.
type Message struct {
	RecipientID string         `json:"recipient_id"`
	OrderID     string         `json:"order_id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Data        map[string]any `json:"data"`
	CreatedAt   time.Time      `json:"created_at"`
}

func newMessage(n ports.Notification) Message {
	return Message{
		RecipientID: n.RecipientID.String(),
		OrderID:     n.OrderID.String(),
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		Data:        n.Data,
		CreatedAt:   n.CreatedAt,
	}
}

// KafkaNotifier implements ports.Notifier.
type KafkaNotifier struct {
	writer *kafka.Writer
	topic  string
}

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		topic: topic,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
		},
	}
}

func (n *KafkaNotifier) Notify(ctx context.Context, notification ports.Notification) error {
	data, err := json.Marshal(newMessage(notification))
	if err != nil {
		return err
	}

	key := notification.RecipientID.String()
	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafka.Header{
			{Key: "notification_type", Value: []byte(notification.Type)},
		},
	}

	ctx, span := producerTracer.Start(ctx, "send "+n.topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("send"),
			semconv.MessagingOperationTypePublish,
			semconv.MessagingDestinationName(n.topic),
			semconv.MessagingKafkaMessageKey(key),
			attribute.String("marketplace.order_id", notification.OrderID.String()),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, NewMessageCarrier(&msg))

	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
