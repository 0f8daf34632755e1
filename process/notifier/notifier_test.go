package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkflow/models"
	"checkflow/pkg/queue"
)

type fakeDirectory struct {
	customer models.Customer
	err      error
}

func (f fakeDirectory) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	return f.customer, f.err
}

type captureSender struct {
	to, subject, body string
	err               error
}

func (c *captureSender) Send(to, subject, body string) error {
	if c.err != nil {
		return c.err
	}
	c.to, c.subject, c.body = to, subject, body
	return nil
}

func statusPayload(t *testing.T, status queue.PaymentStatus) []byte {
	t.Helper()
	payload, err := json.Marshal(status)
	require.NoError(t, err)
	return payload
}

func successStatus() queue.PaymentStatus {
	return queue.PaymentStatus{
		PaymentID:     "payment-abc",
		CustomerID:    "cust-1",
		Amount:        decimal.RequireFromString("1500.00"),
		Status:        queue.StatusSuccess,
		PaymentMethod: queue.MethodCheck,
		Timestamp:     time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
	}
}

func TestHandleSendsSuccessEmail(t *testing.T) {
	sender := &captureSender{}
	n := New(nil, fakeDirectory{customer: models.Customer{ID: "cust-1", Name: "Jane Doe", Email: "jane@example.com"}}, sender)

	err := n.Handle(context.Background(), statusPayload(t, successStatus()))
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", sender.to)
	assert.Equal(t, "Payment Successful - payment-abc", sender.subject)
	assert.Contains(t, sender.body, "Dear Jane Doe")
	assert.Contains(t, sender.body, "$1500.00")
	assert.Contains(t, sender.body, "processed successfully")
}

func TestHandleSendsFailureEmailWithReason(t *testing.T) {
	sender := &captureSender{}
	n := New(nil, fakeDirectory{customer: models.Customer{Name: "Jane Doe", Email: "jane@example.com"}}, sender)

	status := successStatus()
	status.Status = queue.StatusFailed
	status.Amount = decimal.Zero
	status.ErrorMessage = "extract text: tesseract: boom"

	err := n.Handle(context.Background(), statusPayload(t, status))
	require.NoError(t, err)

	assert.Equal(t, "Payment Failed - payment-abc", sender.subject)
	assert.Contains(t, sender.body, "could not be processed")
	assert.Contains(t, sender.body, "Reason: extract text: tesseract: boom")
}

func TestHandleUnknownCustomer(t *testing.T) {
	sender := &captureSender{}
	n := New(nil, fakeDirectory{err: ErrCustomerNotFound}, sender)

	err := n.Handle(context.Background(), statusPayload(t, successStatus()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Empty(t, sender.to)
}

func TestHandleUndecodablePayload(t *testing.T) {
	n := New(nil, fakeDirectory{}, &captureSender{})
	require.Error(t, n.Handle(context.Background(), []byte("not json")))
}

func TestHandleSenderFailure(t *testing.T) {
	sender := &captureSender{err: errors.New("smtp down")}
	n := New(nil, fakeDirectory{customer: models.Customer{Email: "jane@example.com"}}, sender)

	err := n.Handle(context.Background(), statusPayload(t, successStatus()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
}

func TestCustomerClientGetCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/customers/cust-1":
			_ = json.NewEncoder(w).Encode(models.Customer{ID: "cust-1", Name: "Jane Doe", Email: "jane@example.com"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewCustomerClient(srv.URL)

	customer, err := client.GetCustomer(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", customer.Name)
	assert.Equal(t, "jane@example.com", customer.Email)

	_, err = client.GetCustomer(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
