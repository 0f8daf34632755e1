package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"checkflow/pkg/checkparse"
	"checkflow/pkg/ocr"
	"checkflow/pkg/queue"
	"checkflow/process/consumer"
)

func mustDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return gdb
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	brokers := queue.Brokers()
	checkTopic := queue.Topic("CHECK_PAYMENT_TOPIC", queue.DefaultCheckTopic)
	statusTopic := queue.Topic("PAYMENT_STATUS_TOPIC", queue.DefaultStatusTopic)
	groupID := os.Getenv("CHECK_CONSUMER_GROUP")
	if groupID == "" {
		groupID = "check-service"
	}

	reader := queue.NewReader(brokers, groupID, checkTopic)
	defer reader.Close()
	publisher := consumer.NewKafkaStatusPublisher(queue.NewWriter(brokers, statusTopic))
	defer publisher.Close()

	worker := consumer.NewWorker(
		reader,
		checkparse.NewReader(ocr.NewEngine()),
		publisher,
		&consumer.GormLedger{DB: mustDBFromEnv()},
	)

	log.Printf("check worker consuming topic=%s group=%s brokers=%v", checkTopic, groupID, brokers)
	if err := worker.Run(ctx); err != nil {
		log.Fatalf("worker stopped: %v", err)
	}
	log.Println("check worker shut down")
}
