package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"checkflow/pkg/queue"
	"checkflow/process/notifier"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	brokers := queue.Brokers()
	statusTopic := queue.Topic("PAYMENT_STATUS_TOPIC", queue.DefaultStatusTopic)
	groupID := envOr("NOTIFIER_CONSUMER_GROUP", "notification-service")

	smtpPort, err := strconv.Atoi(envOr("SMTP_PORT", "587"))
	if err != nil {
		log.Fatalf("invalid SMTP_PORT: %v", err)
	}
	sender := notifier.NewSMTPSender(
		envOr("SMTP_HOST", "localhost"),
		smtpPort,
		os.Getenv("SMTP_USERNAME"),
		os.Getenv("SMTP_PASSWORD"),
		envOr("SMTP_FROM", "payments@example.com"),
	)
	customers := notifier.NewCustomerClient(envOr("CUSTOMER_API_URL", "http://localhost:8081"))

	reader := queue.NewReader(brokers, groupID, statusTopic)
	defer reader.Close()

	n := notifier.New(reader, customers, sender)
	log.Printf("notifier consuming topic=%s group=%s brokers=%v", statusTopic, groupID, brokers)
	if err := n.Run(ctx); err != nil {
		log.Fatalf("notifier stopped: %v", err)
	}
	log.Println("notifier shut down")
}
