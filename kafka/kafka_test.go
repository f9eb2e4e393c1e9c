package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdomain "github.com/tair/retail-dashboard/internal/order/domain"
)

func headerMap(headers []sarama.RecordHeader) map[string]string {
	out := make(map[string]string, len(headers))
	for _, h := range headers {
		out[string(h.Key)] = string(h.Value)
	}
	return out
}

func TestPublishCatalogChanged(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, TopicCatalogChanged, msg.Topic)

		h := headerMap(msg.Headers)
		assert.Equal(t, EventTypeCatalogChanged, h[headerEventType])
		assert.Equal(t, "node-a", h[headerOrigin])
		assert.NotEmpty(t, h[headerEventID])

		raw, err := msg.Value.Encode()
		require.NoError(t, err)
		var event CatalogChangedEvent
		require.NoError(t, json.Unmarshal(raw, &event))
		assert.Equal(t, "upsert", event.Kind)
		assert.Equal(t, []string{"Product_4"}, event.ProductIDs)
		return nil
	})

	p := NewPublisherWithProducer(producer, "node-a")
	require.NoError(t, p.CatalogChanged(context.Background(), "upsert", []string{"Product_4"}))
	require.NoError(t, p.Close())
}

func TestPublishOrderPlacedFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewPublisherWithProducer(producer, "node-a")
	err := p.OrderPlaced(context.Background(), orderdomain.Order{ID: "o1", ProductID: "Product_1", Quantity: 1})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

type countingMirror struct{ invalidated int }

func (m *countingMirror) Invalidate() { m.invalidated++ }

func catalogMessage(t *testing.T, origin string) *sarama.ConsumerMessage {
	t.Helper()
	payload, err := json.Marshal(CatalogChangedEvent{Kind: "delete", ProductIDs: []string{"Product_2"}, Origin: origin})
	require.NoError(t, err)
	return &sarama.ConsumerMessage{
		Topic: TopicCatalogChanged,
		Value: payload,
		Headers: []*sarama.RecordHeader{
			{Key: []byte(headerEventType), Value: []byte(EventTypeCatalogChanged)},
			{Key: []byte(headerOrigin), Value: []byte(origin)},
		},
	}
}

func TestConsumerInvalidatesOnRemoteChange(t *testing.T) {
	mirror := &countingMirror{}
	c := newConsumer("group", []string{TopicCatalogChanged}, "node-a")
	c.RegisterHandler(EventTypeCatalogChanged, InvalidateOnCatalogChange(mirror))
	ctx := context.Background()

	require.NoError(t, c.handleMessage(ctx, catalogMessage(t, "node-a")))
	assert.Zero(t, mirror.invalidated)

	require.NoError(t, c.handleMessage(ctx, catalogMessage(t, "node-b")))
	assert.Equal(t, 1, mirror.invalidated)
}

func TestConsumerRejectsBadMessages(t *testing.T) {
	c := newConsumer("group", []string{TopicCatalogChanged}, "node-a")
	c.RegisterHandler(EventTypeCatalogChanged, func(ctx context.Context, payload []byte) error {
		return errors.New("boom")
	})
	ctx := context.Background()

	assert.Error(t, c.handleMessage(ctx, &sarama.ConsumerMessage{Topic: TopicCatalogChanged}))
	assert.Error(t, c.handleMessage(ctx, catalogMessage(t, "node-b")))

	unhandled := &sarama.ConsumerMessage{Headers: []*sarama.RecordHeader{
		{Key: []byte(headerEventType), Value: []byte(EventTypeOrderPlaced)},
	}}
	assert.NoError(t, c.handleMessage(ctx, unhandled))
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	assert.NoError(t, p.CatalogChanged(context.Background(), "replace", nil))
	assert.NoError(t, p.OrderPlaced(context.Background(), orderdomain.Order{}))
}
