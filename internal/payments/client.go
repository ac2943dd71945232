// Package payments wraps the Square Payments REST API calls used for
// membership purchases and renewals.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	sandboxURL    = "https://connect.squareupsandbox.com"
	productionURL = "https://connect.squareup.com"
	apiVersion    = "2024-01-18"
)

// Membership prices, in cents.
const (
	JoinAmountCents  = 5000
	RenewAmountCents = 3000
)

type Client struct {
	BaseURL     string
	AccessToken string
	HTTPClient  *http.Client
}

// NewClient builds a Square client for the given environment ("sandbox" or
// "production").
func NewClient(accessToken, environment string) *Client {
	baseURL := sandboxURL
	if environment == "production" {
		baseURL = productionURL
	}
	return &Client{
		BaseURL:     baseURL,
		AccessToken: accessToken,
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type createPaymentRequestBody struct {
	SourceID       string `json:"source_id"`
	IdempotencyKey string `json:"idempotency_key"`
	AmountMoney    Money  `json:"amount_money"`
}

// Payment is the subset of Square's payment object the app uses.
type Payment struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	ReceiptURL string `json:"receipt_url"`
}

type createPaymentResponseBody struct {
	Payment Payment `json:"payment"`
	Errors  []struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// CreatePayment charges the card nonce for the given amount in USD.
func (c *Client) CreatePayment(ctx context.Context, sourceID, idempotencyKey string, amountCents int64) (*Payment, error) {
	body := createPaymentRequestBody{
		SourceID:       sourceID,
		IdempotencyKey: idempotencyKey,
		AmountMoney:    Money{Amount: amountCents, Currency: "USD"},
	}

	var response createPaymentResponseBody
	if err := c.do(ctx, http.MethodPost, "/v2/payments", body, &response); err != nil {
		return nil, err
	}
	if len(response.Errors) > 0 {
		return nil, fmt.Errorf("payment rejected: %s (%s)", response.Errors[0].Detail, response.Errors[0].Code)
	}
	return &response.Payment, nil
}

// CatalogItem is a catalog object as returned by Square's list endpoint,
// passed through to the storefront untouched.
type CatalogItem = json.RawMessage

type listCatalogResponseBody struct {
	Objects []CatalogItem `json:"objects"`
}

// ListCatalogItems returns the catalog ITEM objects.
func (c *Client) ListCatalogItems(ctx context.Context) ([]CatalogItem, error) {
	var response listCatalogResponseBody
	if err := c.do(ctx, http.MethodGet, "/v2/catalog/list?types=ITEM", nil, &response); err != nil {
		return nil, err
	}
	return response.Objects, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Square-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return fmt.Errorf("unexpected status code %d: %s", res.StatusCode, detail)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
