package events

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/config"
)

// Publisher delivers CloudEvents to a topic.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, ce CloudEvent) error
	Close() error
}

// NewPublisher builds the publisher selected by cfg.Driver.
func NewPublisher(cfg config.EventsConfig, kafkaCfg config.KafkaConfig, logger *zap.Logger) (Publisher, error) {
	switch cfg.Driver {
	case config.EventsDriverKafka:
		return NewKafkaProducer(kafkaCfg.Brokers, logger), nil
	case config.EventsDriverRabbitMQ:
		return NewAMQPPublisher(cfg.RabbitMQURL, logger)
	case config.EventsDriverNone, "":
		return NopPublisher{}, nil
	default:
		return nil, fmt.Errorf("unsupported events driver %q", cfg.Driver)
	}
}

// NopPublisher discards every event.
type NopPublisher struct{}

// PublishEvent implements Publisher.
func (NopPublisher) PublishEvent(context.Context, string, CloudEvent) error { return nil }

// Close implements Publisher.
func (NopPublisher) Close() error { return nil }
