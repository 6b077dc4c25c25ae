// Package payment wraps the PayMongo checkout API: session creation,
// session retrieval and webhook signature verification.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wisker-app/wisker/internal/config"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
)

// LineItem is one purchasable row in a checkout session. Amount is in
// centavos.
type LineItem struct {
	Name     string `json:"name"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Quantity int    `json:"quantity"`
}

// CheckoutParams describes a checkout session to create
type CheckoutParams struct {
	Description string
	LineItems   []LineItem
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// CheckoutSession is the gateway's view of a session
type CheckoutSession struct {
	ID          string
	CheckoutURL string
	Status      string // "active" | "expired"
	PaymentPaid bool
	Metadata    map[string]string
}

// Gateway is the payment operations the rest of the service needs
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error)
}

// Client talks to the PayMongo REST API with Basic auth (secret key as
// username, empty password).
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a payment gateway client
func NewClient(cfg config.PaymentConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log,
	}
}

// API envelope shapes. PayMongo wraps everything in {"data":{"attributes":...}}.

type apiRequest struct {
	Data struct {
		Attributes interface{} `json:"attributes"`
	} `json:"data"`
}

type sessionAttributes struct {
	Description        string            `json:"description,omitempty"`
	LineItems          []LineItem        `json:"line_items"`
	PaymentMethodTypes []string          `json:"payment_method_types"`
	SuccessURL         string            `json:"success_url"`
	CancelURL          string            `json:"cancel_url"`
	Metadata           map[string]string `json:"metadata,omitempty"`
}

type sessionResponse struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			CheckoutURL string            `json:"checkout_url"`
			Status      string            `json:"status"`
			Metadata    map[string]string `json:"metadata"`
			Payments    []struct {
				Attributes struct {
					Status string `json:"status"`
				} `json:"attributes"`
			} `json:"payments"`
		} `json:"attributes"`
	} `json:"data"`
}

type apiErrorResponse struct {
	Errors []struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// CreateCheckoutSession creates a hosted checkout session and returns its
// redirect URL
func (c *Client) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	var req apiRequest
	req.Data.Attributes = sessionAttributes{
		Description:        params.Description,
		LineItems:          params.LineItems,
		PaymentMethodTypes: []string{"card", "gcash", "paymaya"},
		SuccessURL:         params.SuccessURL,
		CancelURL:          params.CancelURL,
		Metadata:           params.Metadata,
	}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/checkout_sessions", &req, &resp); err != nil {
		return nil, err
	}

	return sessionFromResponse(&resp), nil
}

// GetCheckoutSession retrieves a session, including whether any of its
// payments has completed
func (c *Client) GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	var resp sessionResponse
	if err := c.do(ctx, http.MethodGet, "/checkout_sessions/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return sessionFromResponse(&resp), nil
}

func sessionFromResponse(resp *sessionResponse) *CheckoutSession {
	s := &CheckoutSession{
		ID:          resp.Data.ID,
		CheckoutURL: resp.Data.Attributes.CheckoutURL,
		Status:      resp.Data.Attributes.Status,
		Metadata:    resp.Data.Attributes.Metadata,
	}
	for _, p := range resp.Data.Attributes.Payments {
		if p.Attributes.Status == "paid" {
			s.PaymentPaid = true
			break
		}
	}
	return s
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Internal("Failed to encode gateway request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Internal("Failed to build gateway request", err)
	}
	req.SetBasicAuth(c.secretKey, "")
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.PaymentGatewayError("Payment gateway unreachable", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.PaymentGatewayError("Failed to read gateway response", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiErrorResponse
		if json.Unmarshal(data, &apiErr) == nil && len(apiErr.Errors) > 0 {
			return errors.PaymentGatewayError(
				fmt.Sprintf("Payment gateway error: %s", apiErr.Errors[0].Detail), nil)
		}
		return errors.PaymentGatewayError(
			fmt.Sprintf("Payment gateway returned status %d", resp.StatusCode), nil)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.PaymentGatewayError("Failed to decode gateway response", err)
		}
	}

	return nil
}
