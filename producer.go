package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"checkflow/pkg/queue"
)

// PaymentProducer publishes payment requests for the background workers.
// Payment IDs are minted here so the API can hand them back immediately.
type PaymentProducer struct {
	checkWriter *kafka.Writer
	cardWriter  *kafka.Writer
}

func NewPaymentProducer() *PaymentProducer {
	brokers := queue.Brokers()
	return &PaymentProducer{
		checkWriter: queue.NewWriter(brokers, queue.Topic("CHECK_PAYMENT_TOPIC", queue.DefaultCheckTopic)),
		cardWriter:  queue.NewWriter(brokers, queue.Topic("CARD_PAYMENT_TOPIC", queue.DefaultCardTopic)),
	}
}

func (p *PaymentProducer) SubmitCheck(ctx context.Context, customerID string, image []byte) (string, error) {
	paymentID := newPaymentID()
	req := queue.CheckPaymentRequest{PaymentID: paymentID, CustomerID: customerID, ImageData: image}
	if err := p.publish(ctx, p.checkWriter, paymentID, req); err != nil {
		return "", err
	}
	return paymentID, nil
}

func (p *PaymentProducer) SubmitCard(ctx context.Context, customerID, cardNumber, expiry, cvv string, amount decimal.Decimal) (string, error) {
	paymentID := newPaymentID()
	req := queue.CardPaymentRequest{
		PaymentID:  paymentID,
		CustomerID: customerID,
		CardNumber: cardNumber,
		ExpiryDate: expiry,
		CVV:        cvv,
		Amount:     amount,
	}
	if err := p.publish(ctx, p.cardWriter, paymentID, req); err != nil {
		return "", err
	}
	return paymentID, nil
}

func (p *PaymentProducer) publish(ctx context.Context, w *kafka.Writer, key string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode payment request: %w", err)
	}
	if err := w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: payload}); err != nil {
		return fmt.Errorf("write payment request: %w", err)
	}
	return nil
}

func (p *PaymentProducer) Close() {
	p.checkWriter.Close()
	p.cardWriter.Close()
}

func newPaymentID() string {
	return "payment-" + uuid.NewString()
}
