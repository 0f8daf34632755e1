// Package consumer implements the check payment worker: it consumes check
// payment requests from Kafka, runs OCR and the check-text extractors over
// the image, publishes the resulting payment status, and records it in the
// ledger.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"checkflow/pkg/checkparse"
	"checkflow/pkg/queue"
)

// CheckReader produces a parsed Check from raw image bytes.
type CheckReader interface {
	ReadCheck(ctx context.Context, image []byte) (checkparse.Check, error)
}

// StatusPublisher reports payment outcomes to the status topic.
type StatusPublisher interface {
	Publish(ctx context.Context, status queue.PaymentStatus) error
}

// LedgerStore persists payment outcomes.
type LedgerStore interface {
	Record(status queue.PaymentStatus, check checkparse.Check) error
}

// messageSource is the slice of kafka.Reader the worker needs; it exists so
// tests can feed messages without a broker.
type messageSource interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Worker ties the pieces together. Offsets are committed after every
// message, including failed ones: a failure is published as a Failed status
// rather than redelivered, since reprocessing the same unreadable image
// cannot succeed.
type Worker struct {
	source messageSource
	checks CheckReader
	status StatusPublisher
	ledger LedgerStore
}

func NewWorker(source messageSource, checks CheckReader, status StatusPublisher, ledger LedgerStore) *Worker {
	return &Worker{source: source, checks: checks, status: status, ledger: ledger}
}

// Run consumes until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		msg, err := w.source.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}
		log.Printf("consumer: received message partition=%d offset=%d", msg.Partition, msg.Offset)
		if err := w.Handle(ctx, msg.Value); err != nil {
			log.Printf("consumer: message dropped: %v", err)
		}
		if err := w.source.CommitMessages(ctx, msg); err != nil {
			log.Printf("consumer: commit failed: %v", err)
		}
	}
}

// Handle processes one raw message payload. It returns an error only for
// messages that cannot be acted on at all (undecodable payloads); check
// processing failures are reported as a Failed status instead.
func (w *Worker) Handle(ctx context.Context, payload []byte) error {
	var req queue.CheckPaymentRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("decode check payment request: %w", err)
	}
	if req.PaymentID == "" {
		return fmt.Errorf("check payment request missing payment id")
	}
	log.Printf("consumer: processing payment=%s customer=%s image=%d bytes",
		req.PaymentID, req.CustomerID, len(req.ImageData))

	check, err := w.checks.ReadCheck(ctx, req.ImageData)
	if err != nil {
		log.Printf("consumer: payment=%s check read failed: %v", req.PaymentID, err)
		return w.report(ctx, failedStatus(req, err), checkparse.Check{})
	}
	log.Printf("consumer: payment=%s %s", req.PaymentID, check)

	status := queue.PaymentStatus{
		PaymentID:     req.PaymentID,
		CustomerID:    req.CustomerID,
		Amount:        check.Amount.Value,
		Status:        queue.StatusSuccess,
		PaymentMethod: queue.MethodCheck,
		Timestamp:     time.Now().UTC(),
	}
	return w.report(ctx, status, check)
}

func (w *Worker) report(ctx context.Context, status queue.PaymentStatus, check checkparse.Check) error {
	if err := w.status.Publish(ctx, status); err != nil {
		return fmt.Errorf("publish status for %s: %w", status.PaymentID, err)
	}
	if err := w.ledger.Record(status, check); err != nil {
		// status already published; the ledger row stays Pending until retry
		log.Printf("consumer: ledger record failed for %s: %v", status.PaymentID, err)
	}
	return nil
}

func failedStatus(req queue.CheckPaymentRequest, cause error) queue.PaymentStatus {
	return queue.PaymentStatus{
		PaymentID:     req.PaymentID,
		CustomerID:    req.CustomerID,
		Amount:        decimal.Zero,
		Status:        queue.StatusFailed,
		ErrorMessage:  cause.Error(),
		PaymentMethod: queue.MethodCheck,
		Timestamp:     time.Now().UTC(),
	}
}
