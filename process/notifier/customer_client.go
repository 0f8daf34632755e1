// Package notifier consumes payment statuses and emails the affected
// customer about the outcome.
package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"checkflow/models"
)

// ErrCustomerNotFound is returned when the customer API has no record for
// the id on a payment status.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerClient fetches customer records from the payments API.
type CustomerClient struct {
	baseURL string
	client  *http.Client
}

func NewCustomerClient(baseURL string) *CustomerClient {
	return &CustomerClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *CustomerClient) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/customers/"+id, nil)
	if err != nil {
		return models.Customer{}, fmt.Errorf("build customer request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return models.Customer{}, fmt.Errorf("fetch customer %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return models.Customer{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}
	if resp.StatusCode != http.StatusOK {
		return models.Customer{}, fmt.Errorf("fetch customer %s: unexpected status %d", id, resp.StatusCode)
	}
	var customer models.Customer
	if err := json.NewDecoder(resp.Body).Decode(&customer); err != nil {
		return models.Customer{}, fmt.Errorf("decode customer %s: %w", id, err)
	}
	return customer, nil
}
