package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"checkflow/pkg/queue"
	"checkflow/process/ingest"
)

func main() {
	dir := os.Getenv("CHECK_DROP_DIR")
	if dir == "" {
		dir = "./drop"
	}
	topic := queue.Topic("CHECK_PAYMENT_TOPIC", queue.DefaultCheckTopic)
	writer := queue.NewWriter(queue.Brokers(), topic)
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := &ingest.Watcher{
		Dir:               dir,
		DefaultCustomerID: os.Getenv("CHECK_DEFAULT_CUSTOMER_ID"),
		Publisher:         ingest.NewKafkaRequestPublisher(writer),
	}
	if err := w.Run(ctx); err != nil {
		log.Fatalf("ingest: %v", err)
	}
}
