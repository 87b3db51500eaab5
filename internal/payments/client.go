package payments

import (
	"errors"
	"fmt"
	"os"
	"time"

	"academy/internal/app"

	"github.com/go-resty/resty/v2"
)

// Client checks payment references against the external gateway.
// When PAYMENT_GATEWAY_URL is not set (local and test runs) every
// reference is accepted and approval stays a manual admin step.
type Client struct {
	http    *resty.Client
	baseUrl string
	apiKey  string
}

type verifyResponse struct {
	Status string  `json:"status"`
	Amount float64 `json:"amount"`
}

func NewClient() *Client {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2)
	return &Client{
		http:    client,
		baseUrl: app.RemoveTrailingSlash(os.Getenv("PAYMENT_GATEWAY_URL")),
		apiKey:  os.Getenv("PAYMENT_GATEWAY_KEY"),
	}
}

// VerifyPayment confirms the reference exists on the gateway and was
// settled for at least the expected amount.
func (p *Client) VerifyPayment(paymentRef string, expectedAmount float64) error {
	if p.baseUrl == "" {
		return nil
	}
	var body verifyResponse
	resp, err := p.http.R().
		SetHeader("Authorization", "Bearer "+p.apiKey).
		SetResult(&body).
		Get(fmt.Sprintf("%s/payments/%s", p.baseUrl, paymentRef))
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("gateway returned %d", resp.StatusCode())
	}
	if body.Status != "settled" {
		return errors.New("payment not settled")
	}
	if app.RoundCost(body.Amount, 2) < app.RoundCost(expectedAmount, 2) {
		return errors.New("payment amount below package price")
	}
	return nil
}
