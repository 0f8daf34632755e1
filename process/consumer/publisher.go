package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"checkflow/pkg/queue"
)

// KafkaStatusPublisher writes payment statuses to the status topic, keyed
// by payment id so all updates for one payment land on the same partition.
type KafkaStatusPublisher struct {
	writer *kafka.Writer
}

func NewKafkaStatusPublisher(writer *kafka.Writer) *KafkaStatusPublisher {
	return &KafkaStatusPublisher{writer: writer}
}

func (p *KafkaStatusPublisher) Publish(ctx context.Context, status queue.PaymentStatus) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("encode payment status: %w", err)
	}
	msg := kafka.Message{Key: []byte(status.PaymentID), Value: payload}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write payment status: %w", err)
	}
	return nil
}

// Close flushes pending writes.
func (p *KafkaStatusPublisher) Close() error {
	return p.writer.Close()
}
