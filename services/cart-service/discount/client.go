package discount

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
)

// Client calls the discount service to look up the amount to subtract from a
// product's unit price. Lookups are wrapped in a circuit breaker so a dead
// discount service fails cart updates fast instead of stacking timeouts.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[decimal.Decimal]
}

type discountResponse struct {
	ProductName string          `json:"product_name"`
	Amount      decimal.Decimal `json:"amount"`
}

func NewClient(baseURL string) *Client {
	settings := gobreaker.Settings{
		Name:    "discount-service",
		Timeout: 10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[decimal.Decimal](settings),
	}
}

// GetDiscount returns the discount amount for a product name. Unknown
// products get a zero discount from the service; only transport and server
// failures surface as errors.
func (c *Client) GetDiscount(ctx context.Context, productName string) (decimal.Decimal, error) {
	return c.breaker.Execute(func() (decimal.Decimal, error) {
		return c.fetch(ctx, productName)
	})
}

func (c *Client) fetch(ctx context.Context, productName string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/discounts/%s", c.baseURL, url.PathEscape(productName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("discount service returned %d", resp.StatusCode)
	}

	var body discountResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, err
	}
	if body.Amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("discount service returned negative amount %s for %s", body.Amount, productName)
	}
	return body.Amount, nil
}
