package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"checkflow/models"
	"checkflow/pkg/queue"
)

// CustomerDirectory resolves a customer id to a customer record.
type CustomerDirectory interface {
	GetCustomer(ctx context.Context, id string) (models.Customer, error)
}

type messageSource interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Notifier consumes payment statuses and emails the customer about each
// one.
type Notifier struct {
	source    messageSource
	customers CustomerDirectory
	email     EmailSender
}

func New(source messageSource, customers CustomerDirectory, email EmailSender) *Notifier {
	return &Notifier{source: source, customers: customers, email: email}
}

// Run consumes until the context is cancelled. Messages that cannot be
// delivered are logged and committed anyway; a notification is best-effort
// and must not wedge the status topic.
func (n *Notifier) Run(ctx context.Context) error {
	for {
		msg, err := n.source.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}
		if err := n.Handle(ctx, msg.Value); err != nil {
			log.Printf("notifier: %v", err)
		}
		if err := n.source.CommitMessages(ctx, msg); err != nil {
			log.Printf("notifier: commit failed: %v", err)
		}
	}
}

// Handle notifies the customer referenced by one raw status payload.
func (n *Notifier) Handle(ctx context.Context, payload []byte) error {
	var status queue.PaymentStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		return fmt.Errorf("decode payment status: %w", err)
	}
	customer, err := n.customers.GetCustomer(ctx, status.CustomerID)
	if err != nil {
		return fmt.Errorf("payment %s: %w", status.PaymentID, err)
	}
	subject := subjectFor(status)
	if err := n.email.Send(customer.Email, subject, bodyFor(status, customer)); err != nil {
		return fmt.Errorf("payment %s: %w", status.PaymentID, err)
	}
	log.Printf("notifier: sent %q to %s for payment=%s", subject, customer.Email, status.PaymentID)
	return nil
}
