package events

import (
	"context"
	"log/slog"
)

// LoggingPublisher stands in for Kafka when no brokers are configured.
type LoggingPublisher struct {
	logger *slog.Logger
}

func NewLoggingPublisher(logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{logger: logger}
}

func (p *LoggingPublisher) Publish(ctx context.Context, eventType string, payload []byte, partitionKey string) error {
	p.logger.InfoContext(ctx, "review event logged",
		"module", "events.publisher",
		"operation", "publish",
		"outcome", "success",
		"event_type", eventType,
		"shop", partitionKey,
		"payload_bytes", len(payload),
	)
	return nil
}
