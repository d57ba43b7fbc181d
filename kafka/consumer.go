package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/seydina/distriops/pkg/logger"
)

// SaleCompletedHandler processes a sale.completed event.
type SaleCompletedHandler func(ctx context.Context, event SaleCompletedEvent) error

// StockMovementAppliedHandler processes a stock.movement.applied event.
type StockMovementAppliedHandler func(ctx context.Context, event StockMovementAppliedEvent) error

// Consumer wraps a Kafka consumer group dispatching domain events to
// registered handlers.
type Consumer struct {
	consumer sarama.ConsumerGroup
	groupID  string
	topics   []string

	onSaleCompleted        SaleCompletedHandler
	onStockMovementApplied StockMovementAppliedHandler
}

// NewConsumer creates a new Kafka consumer group.
func NewConsumer(brokers []string, groupID string, topics []string) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_6_0_0
	config.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Return.Errors = true

	consumer, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Str("group_id", groupID).
		Strs("topics", topics).
		Msg("Kafka consumer initialized")

	return &Consumer{
		consumer: consumer,
		groupID:  groupID,
		topics:   topics,
	}, nil
}

// OnSaleCompleted registers the handler for sale.completed events.
func (c *Consumer) OnSaleCompleted(handler SaleCompletedHandler) {
	c.onSaleCompleted = handler
}

// OnStockMovementApplied registers the handler for stock.movement.applied events.
func (c *Consumer) OnStockMovementApplied(handler StockMovementAppliedHandler) {
	c.onStockMovementApplied = handler
}

// Start begins consuming in the background until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	handler := &consumerGroupHandler{consumer: c}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Logger.Info().Msg("Consumer context cancelled, stopping")
				return
			default:
				if err := c.consumer.Consume(ctx, c.topics, handler); err != nil {
					logger.Logger.Error().Err(err).Msg("Error from consumer")
				}
			}
		}
	}()

	go func() {
		for err := range c.consumer.Errors() {
			logger.Logger.Error().Err(err).Msg("Consumer error")
		}
	}()

	logger.Logger.Info().
		Strs("topics", c.topics).
		Str("group_id", c.groupID).
		Msg("Kafka consumer started")

	return nil
}

// Close closes the consumer group.
func (c *Consumer) Close() error {
	if c.consumer != nil {
		return c.consumer.Close()
	}
	return nil
}

type consumerGroupHandler struct {
	consumer *Consumer
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		h.handleMessage(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

func (h *consumerGroupHandler) handleMessage(ctx context.Context, message *sarama.ConsumerMessage) {
	carrier := propagation.MapCarrier{}
	eventType := ""
	eventID := ""
	for _, header := range message.Headers {
		switch key := string(header.Key); key {
		case "traceparent", "tracestate":
			carrier[key] = string(header.Value)
		case "event_type":
			eventType = string(header.Value)
		case "event_id":
			eventID = string(header.Value)
		}
	}
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

	tracer := otel.Tracer("kafka-consumer")
	ctx, span := tracer.Start(ctx, "kafka.consume."+message.Topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.source", message.Topic),
			attribute.Int("messaging.kafka.partition", int(message.Partition)),
			attribute.Int64("messaging.kafka.offset", message.Offset),
			attribute.String("event.type", eventType),
			attribute.String("event.id", eventID),
		),
	)
	defer span.End()

	if eventType == "" {
		span.SetStatus(codes.Error, "Message without event_type header")
		logger.Warn(ctx).Str("topic", message.Topic).Msg("Message without event_type header")
		return
	}

	var err error
	switch eventType {
	case EventTypeSaleCompleted:
		if h.consumer.onSaleCompleted == nil {
			logger.Warn(ctx).Str("event_type", eventType).Msg("No handler registered for event type")
			return
		}
		var event SaleCompletedEvent
		if err = json.Unmarshal(message.Value, &event); err == nil {
			err = h.consumer.onSaleCompleted(ctx, event)
		}
	case EventTypeStockMovementApplied:
		if h.consumer.onStockMovementApplied == nil {
			logger.Warn(ctx).Str("event_type", eventType).Msg("No handler registered for event type")
			return
		}
		var event StockMovementAppliedEvent
		if err = json.Unmarshal(message.Value, &event); err == nil {
			err = h.consumer.onStockMovementApplied(ctx, event)
		}
	default:
		logger.Warn(ctx).Str("event_type", eventType).Msg("Unknown event type")
		return
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error(ctx).
			Err(err).
			Str("event_type", eventType).
			Str("event_id", eventID).
			Msg("Failed to handle event")
		return
	}

	logger.Debug(ctx).
		Str("event_type", eventType).
		Str("event_id", eventID).
		Msg("Event handled")
}
