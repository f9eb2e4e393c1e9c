package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	orderdomain "github.com/tair/retail-dashboard/internal/order/domain"
	"github.com/tair/retail-dashboard/pkg/logger"
)

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
	origin   string
	now      func() time.Time
}

// NewPublisher creates a new Kafka publisher. origin identifies this
// instance so it can skip its own events.
func NewPublisher(brokers []string, origin string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Str("origin", origin).
		Msg("Kafka publisher initialized")

	return NewPublisherWithProducer(producer, origin), nil
}

// NewPublisherWithProducer wraps an existing producer
func NewPublisherWithProducer(producer sarama.SyncProducer, origin string) *Publisher {
	return &Publisher{producer: producer, origin: origin, now: time.Now}
}

// CatalogChanged publishes a catalog.changed event
func (p *Publisher) CatalogChanged(ctx context.Context, kind string, productIDs []string) error {
	event := CatalogChangedEvent{
		EventID:    uuid.NewString(),
		EventType:  EventTypeCatalogChanged,
		Kind:       kind,
		ProductIDs: productIDs,
		Origin:     p.origin,
		Timestamp:  p.now().UTC(),
	}
	return p.publish(ctx, TopicCatalogChanged, event.EventType, event.EventID, kind, event,
		attribute.String("catalog.change", kind),
		attribute.Int("catalog.rows", len(productIDs)),
	)
}

// OrderPlaced publishes an order.placed event
func (p *Publisher) OrderPlaced(ctx context.Context, order orderdomain.Order) error {
	event := OrderPlacedEvent{
		EventID:     uuid.NewString(),
		EventType:   EventTypeOrderPlaced,
		OrderID:     order.ID,
		Username:    order.Username,
		ProductID:   order.ProductID,
		ProductName: order.ProductName,
		Quantity:    order.Quantity,
		Total:       order.Total,
		Origin:      p.origin,
		Timestamp:   p.now().UTC(),
	}
	return p.publish(ctx, TopicOrderPlaced, event.EventType, event.EventID, order.ProductID, event,
		attribute.String("order.id", order.ID),
		attribute.String("product.id", order.ProductID),
		attribute.Int("product.quantity", order.Quantity),
	)
}

func (p *Publisher) publish(ctx context.Context, topic, eventType, eventID, key string, event interface{}, attrs ...attribute.KeyValue) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+strings.ReplaceAll(eventType, ".", "_"),
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", eventType),
			attribute.String("event.id", eventID),
		),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Inject trace context into Kafka headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte(headerEventType), Value: []byte(eventType)},
		{Key: []byte(headerEventID), Value: []byte(eventID)},
		{Key: []byte(headerOrigin), Value: []byte(p.origin)},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Error(ctx).
			Err(err).
			Str("topic", topic).
			Str("event_type", eventType).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")

	logger.Debug(ctx).
		Str("event_id", eventID).
		Str("event_type", eventType).
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Event published")
	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NoopPublisher drops every event. It stands in when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) CatalogChanged(ctx context.Context, kind string, productIDs []string) error {
	return nil
}

func (NoopPublisher) OrderPlaced(ctx context.Context, order orderdomain.Order) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
