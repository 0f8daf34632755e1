package queue

import (
	"os"
	"strings"

	"github.com/segmentio/kafka-go"
)

// Default topic names; override with the *_TOPIC env vars.
const (
	DefaultCheckTopic  = "payments.check"
	DefaultCardTopic   = "payments.card"
	DefaultStatusTopic = "payments.status"
)

// Brokers returns the Kafka bootstrap servers from KAFKA_BROKERS (comma
// separated), defaulting to a local single-node setup.
func Brokers() []string {
	v := os.Getenv("KAFKA_BROKERS")
	if v == "" {
		return []string{"localhost:9092"}
	}
	var out []string
	for _, b := range strings.Split(v, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// Topic reads a topic name from env with a fallback.
func Topic(envKey, fallback string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return fallback
}

// NewWriter builds a producer for one topic. All writes wait for full
// replica acknowledgement, matching how payment messages must not be lost.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
	}
}

// NewReader builds a consumer-group reader for one topic. Offsets are
// committed explicitly by the workers after a message is handled.
func NewReader(brokers []string, groupID, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10 * 1024 * 1024, // check images ride inside the payload
	})
}
