package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkflow/pkg/checkparse"
	"checkflow/pkg/queue"
)

type fakeCheckReader struct {
	check checkparse.Check
	err   error
}

func (f fakeCheckReader) ReadCheck(ctx context.Context, image []byte) (checkparse.Check, error) {
	return f.check, f.err
}

type capturePublisher struct {
	statuses []queue.PaymentStatus
	err      error
}

func (c *capturePublisher) Publish(ctx context.Context, status queue.PaymentStatus) error {
	if c.err != nil {
		return c.err
	}
	c.statuses = append(c.statuses, status)
	return nil
}

type captureLedger struct {
	statuses []queue.PaymentStatus
	checks   []checkparse.Check
}

func (c *captureLedger) Record(status queue.PaymentStatus, check checkparse.Check) error {
	c.statuses = append(c.statuses, status)
	c.checks = append(c.checks, check)
	return nil
}

func parsedCheck() checkparse.Check {
	d := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return checkparse.Check{
		Amount: checkparse.Amount{Value: decimal.RequireFromString("1500.00"), Currency: "USD"},
		Payee:  checkparse.Payee{Name: "John Smith"},
		Micr: checkparse.Micr{
			Routing:     checkparse.Digits{Value: "021000021", Found: true},
			Account:     checkparse.Digits{Value: "9876543210", Found: true},
			CheckNumber: checkparse.Digits{Value: "1234", Found: true},
		},
		Date: &d,
	}
}

func requestPayload(t *testing.T) []byte {
	t.Helper()
	payload, err := json.Marshal(queue.CheckPaymentRequest{
		PaymentID:  "payment-abc",
		CustomerID: "cust-1",
		ImageData:  []byte{0x01},
	})
	require.NoError(t, err)
	return payload
}

func TestHandleSuccess(t *testing.T) {
	pub := &capturePublisher{}
	led := &captureLedger{}
	w := NewWorker(nil, fakeCheckReader{check: parsedCheck()}, pub, led)

	err := w.Handle(context.Background(), requestPayload(t))
	require.NoError(t, err)

	require.Len(t, pub.statuses, 1)
	status := pub.statuses[0]
	assert.Equal(t, "payment-abc", status.PaymentID)
	assert.Equal(t, queue.StatusSuccess, status.Status)
	assert.Equal(t, queue.MethodCheck, status.PaymentMethod)
	assert.True(t, status.Amount.Equal(decimal.RequireFromString("1500.00")))
	assert.Empty(t, status.ErrorMessage)

	require.Len(t, led.statuses, 1)
	assert.Equal(t, "1234", led.checks[0].Micr.CheckNumber.Value)
	assert.Equal(t, "John Smith", led.checks[0].Payee.Name)
}

func TestHandleReadFailurePublishesFailedStatus(t *testing.T) {
	pub := &capturePublisher{}
	led := &captureLedger{}
	w := NewWorker(nil, fakeCheckReader{err: errors.New("tesseract: boom")}, pub, led)

	err := w.Handle(context.Background(), requestPayload(t))
	require.NoError(t, err)

	require.Len(t, pub.statuses, 1)
	status := pub.statuses[0]
	assert.Equal(t, queue.StatusFailed, status.Status)
	assert.Contains(t, status.ErrorMessage, "tesseract")
	assert.True(t, status.Amount.IsZero())
}

func TestHandleRejectsUndecodablePayload(t *testing.T) {
	pub := &capturePublisher{}
	led := &captureLedger{}
	w := NewWorker(nil, fakeCheckReader{check: parsedCheck()}, pub, led)

	err := w.Handle(context.Background(), []byte("not json"))
	require.Error(t, err)
	assert.Empty(t, pub.statuses)
	assert.Empty(t, led.statuses)
}

func TestHandleRejectsMissingPaymentID(t *testing.T) {
	pub := &capturePublisher{}
	w := NewWorker(nil, fakeCheckReader{check: parsedCheck()}, pub, &captureLedger{})

	err := w.Handle(context.Background(), []byte(`{"customer_id":"cust-1"}`))
	require.Error(t, err)
	assert.Empty(t, pub.statuses)
}

func TestHandlePublishErrorSurfaces(t *testing.T) {
	pub := &capturePublisher{err: errors.New("broker down")}
	w := NewWorker(nil, fakeCheckReader{check: parsedCheck()}, pub, &captureLedger{})

	err := w.Handle(context.Background(), requestPayload(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish status")
}
