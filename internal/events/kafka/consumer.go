package kafka

import (
	"context"
	"errors"

	"marketplace/internal/config"
	"marketplace/internal/events"
	"marketplace/utils"

	"github.com/segmentio/kafka-go"
)

// Consumer reads bid-created events with a consumer group and commits each
// offset only after the handler returned, giving at-least-once delivery.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(cfg config.EventsCfg) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   cfg.Topic,
		}),
	}
}

// Run blocks until ctx is cancelled or the reader fails
func (c *Consumer) Run(ctx context.Context, handle events.Handler) error {
	utils.Info("kafka consumer started", map[string]any{"topic": c.reader.Config().Topic, "group_id": c.reader.Config().GroupID})
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				utils.Info("kafka consumer stopped", nil)
				return nil
			}
			return err
		}

		evt, err := decodeBidCreated(msg.Value)
		if err != nil {
			// undecodable messages are committed so they do not block the partition
			utils.Error("kafka consumer: dropping message", map[string]any{
				"partition": msg.Partition,
				"offset":    msg.Offset,
				"error":     err.Error(),
			})
		} else {
			handle(ctx, evt)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			utils.Warn("kafka consumer: commit failed, message may be redelivered", map[string]any{
				"partition": msg.Partition,
				"offset":    msg.Offset,
				"error":     err.Error(),
			})
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
