package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/events"
	"marketplace/utils"

	"github.com/segmentio/kafka-go"
)

// Producer publishes bid-created events to a topic keyed by auction id, so
// events of one auction land on one partition.
type Producer struct {
	writer *kafka.Writer
	cfg    config.EventsCfg
}

func NewProducer(cfg config.EventsCfg) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
	}
	return &Producer{writer: writer, cfg: cfg}
}

// PublishBidCreated implements events.Publisher
func (p *Producer) PublishBidCreated(ctx context.Context, evt events.BidCreated) error {
	value, err := encodeBidCreated(evt)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.AuctionID),
		Value: value,
	}); err != nil {
		return fmt.Errorf("kafka: publish bid created %s: %w", evt.BidID, err)
	}
	utils.Debug("bid created event published", map[string]any{"topic": p.cfg.Topic, "auction_id": evt.AuctionID, "bid_id": evt.BidID})
	return nil
}

// EnsureTopic creates the topic when the broker does not have it yet
func (p *Producer) EnsureTopic(timeout time.Duration) error {
	if len(p.cfg.Brokers) == 0 {
		return fmt.Errorf("kafka: no brokers configured")
	}
	conn, err := kafka.Dial("tcp", p.cfg.Brokers[0])
	if err != nil {
		return fmt.Errorf("kafka: dial %s: %w", p.cfg.Brokers[0], err)
	}
	defer conn.Close()

	if partitions, err := conn.ReadPartitions(p.cfg.Topic); err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("kafka: create topic %s: %w", p.cfg.Topic, err)
		}
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("kafka: create topic %s: timeout after %v", p.cfg.Topic, timeout)
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func encodeBidCreated(evt events.BidCreated) ([]byte, error) {
	b, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("kafka: encode bid created %s: %w", evt.BidID, err)
	}
	return b, nil
}

func decodeBidCreated(value []byte) (events.BidCreated, error) {
	var evt events.BidCreated
	if err := json.Unmarshal(value, &evt); err != nil {
		return events.BidCreated{}, fmt.Errorf("kafka: decode bid created: %w", err)
	}
	return evt, nil
}
