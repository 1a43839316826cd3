package client

import (
	"context"
	"net/http"
	"time"

	"github.com/runportcullis/portcullis-bot/internal/billing/domain"
	"github.com/runportcullis/portcullis-bot/internal/config"
	"github.com/runportcullis/portcullis-bot/internal/platform/rest"
)

type client struct {
	rest *rest.Client
}

func New(cfg config.Config) domain.Client {
	return &client{
		rest: rest.NewClient("billing", cfg.BillingBaseURL, cfg.BillingAPIKey),
	}
}

type createCustomerPayload struct {
	Name                    string   `json:"name"`
	Type                    string   `json:"type"`
	Currency                string   `json:"currency"`
	BillingEmail            string   `json:"billing_email"`
	AvailablePaymentMethods []string `json:"available_payment_methods"`
	Status                  string   `json:"status"`
	InvoiceReminders        bool     `json:"invoice_reminders_enabled"`
}

type customerResponse struct {
	ID string `json:"id"`
}

func (c *client) CreateCustomer(ctx context.Context, name string, t domain.CustomerType, currency, billingEmail string) (*domain.Customer, error) {
	payload := createCustomerPayload{
		Name:                    name,
		Type:                    string(t),
		Currency:                currency,
		BillingEmail:            billingEmail,
		AvailablePaymentMethods: []string{"card", "transfer"},
		Status:                  "active",
		InvoiceReminders:        true,
	}

	var resp customerResponse
	if err := c.rest.Do(ctx, http.MethodPost, "/customers", payload, &resp); err != nil {
		return nil, err
	}

	return &domain.Customer{
		ID:           resp.ID,
		Name:         name,
		Type:         t,
		Currency:     currency,
		BillingEmail: billingEmail,
	}, nil
}

type createQuotePayload struct {
	CustomerID string `json:"customer_id"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	ExpiresAt  string `json:"expires_at"`
}

type quoteResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	HostedURL string `json:"hosted_url"`
}

func (c *client) CreateQuote(ctx context.Context, customerID string, amount int64, currency string, expiresAt time.Time) (*domain.Quote, error) {
	payload := createQuotePayload{
		CustomerID: customerID,
		Amount:     amount,
		Currency:   currency,
		ExpiresAt:  expiresAt.UTC().Format(time.RFC3339),
	}

	var resp quoteResponse
	if err := c.rest.Do(ctx, http.MethodPost, "/quotes", payload, &resp); err != nil {
		return nil, err
	}

	return &domain.Quote{
		ID:         resp.ID,
		CustomerID: customerID,
		Amount:     amount,
		Currency:   currency,
		Status:     resp.Status,
		ExpiresAt:  expiresAt,
		HostedURL:  resp.HostedURL,
	}, nil
}
