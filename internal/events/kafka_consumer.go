package events

import (
	"context"
	"errors"
	"strings"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/maintenance"
)

// MessageHandler processes one Kafka message.
type MessageHandler func(ctx context.Context, msg kafkago.Message) error

// Consumer reads a single topic as part of a consumer group.
type Consumer struct {
	reader *kafkago.Reader
	logger *zap.Logger
}

// NewConsumer creates a group consumer for topic.
func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:  brokers,
			GroupID:  groupID,
			Topic:    topic,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
		logger: logger,
	}
}

// Consume fetches messages and hands them to handler until ctx is cancelled. Handler
// failures are logged and the offset is committed anyway so one bad message cannot stall
// the partition.
func (c *Consumer) Consume(ctx context.Context, handler MessageHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		if err := handler(ctx, msg); err != nil {
			c.logger.Error("failed to handle message",
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.logger.Warn("failed to commit offset", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}

// MaintenanceTrigger starts an out-of-schedule maintenance cycle. *maintenance.Scheduler
// implements it.
type MaintenanceTrigger interface {
	TriggerNow(ctx context.Context, trigger string) (maintenance.MaintenanceResult, error)
}

// PromotionEventConsumer listens to promotion admin events and reconciles bookings as soon
// as a promotion changes.
type PromotionEventConsumer struct {
	consumer *Consumer
	trigger  MaintenanceTrigger
	logger   *zap.Logger
}

// NewPromotionEventConsumer creates a new consumer for promotion admin events.
func NewPromotionEventConsumer(
	brokers []string,
	groupID string,
	trigger MaintenanceTrigger,
	logger *zap.Logger,
) *PromotionEventConsumer {
	return &PromotionEventConsumer{
		consumer: NewConsumer(brokers, groupID, TopicPromotionAdmin, logger),
		trigger:  trigger,
		logger:   logger,
	}
}

// Start begins consuming promotion events. It blocks until the context is cancelled.
func (c *PromotionEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// handleMessage routes incoming Kafka messages to the appropriate handler.
func (c *PromotionEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from promotion topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return err
	}

	c.logger.Info("received promotion event",
		zap.String("type", cloudEvent.Type),
		zap.String("id", cloudEvent.ID),
	)

	switch {
	case strings.EqualFold(cloudEvent.Type, PromotionDeactivated),
		strings.EqualFold(cloudEvent.Type, PromotionUpdated):
		return c.handlePromotionChanged(ctx, cloudEvent)

	default:
		c.logger.Debug("ignoring unhandled promotion event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

// handlePromotionChanged runs a maintenance cycle for a PromotionChangedEvent.
func (c *PromotionEventConsumer) handlePromotionChanged(ctx context.Context, ce CloudEvent) error {
	var event PromotionChangedEvent
	if err := ce.ParseData(&event); err != nil {
		c.logger.Error("failed to parse PromotionChangedEvent data", zap.Error(err))
		return err
	}

	result, err := c.trigger.TriggerNow(ctx, maintenance.TriggerEvent)
	if errors.Is(err, maintenance.ErrCycleInProgress) {
		c.logger.Info("maintenance already running, promotion change will be picked up by it or the next cycle",
			zap.String("promotion_id", event.PromotionID.String()),
		)
		return nil
	}
	if err != nil {
		return err
	}

	c.logger.Info("promotion change reconciled",
		zap.String("promotion_id", event.PromotionID.String()),
		zap.Int("expired_promotions", result.ExpiredPromotions),
		zap.Int("repaired_bookings", result.RepairedBookings),
	)
	return nil
}

// Close closes the underlying Kafka consumer.
func (c *PromotionEventConsumer) Close() error {
	return c.consumer.Close()
}
