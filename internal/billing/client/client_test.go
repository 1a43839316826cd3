package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/runportcullis/portcullis-bot/internal/billing/domain"
	"github.com/runportcullis/portcullis-bot/internal/config"
	"github.com/runportcullis/portcullis-bot/internal/platform/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomerRequestShape(t *testing.T) {
	var captured map[string]any
	var header http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/customers", r.URL.Path)
		header = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cus_1"}`))
	}))
	defer srv.Close()

	c := New(config.Config{BillingBaseURL: srv.URL, BillingAPIKey: "sk_test"})

	customer, err := c.CreateCustomer(context.Background(), "Acme Corp", domain.CustomerTypeCorporate, "USD", "ada@acme.io")
	require.NoError(t, err)
	assert.Equal(t, "cus_1", customer.ID)

	assert.Equal(t, "Bearer sk_test", header.Get("Authorization"))
	assert.NotEmpty(t, header.Get("X-Request-Id"))

	assert.Equal(t, "Acme Corp", captured["name"])
	assert.Equal(t, "corporate", captured["type"])
	assert.Equal(t, "USD", captured["currency"])
	assert.Equal(t, "ada@acme.io", captured["billing_email"])
	assert.Equal(t, []any{"card", "transfer"}, captured["available_payment_methods"])
	assert.Equal(t, "active", captured["status"])
	assert.Equal(t, true, captured["invoice_reminders_enabled"])
}

func TestCreateQuoteRequestShape(t *testing.T) {
	var captured map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/quotes", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"id":"quo_1","status":"pending","hosted_url":"https://billing.example/quo_1"}`))
	}))
	defer srv.Close()

	c := New(config.Config{BillingBaseURL: srv.URL, BillingAPIKey: "sk_test"})

	expiresAt := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	quote, err := c.CreateQuote(context.Background(), "cus_1", 250000, "USD", expiresAt)
	require.NoError(t, err)

	assert.Equal(t, "quo_1", quote.ID)
	assert.Equal(t, "pending", quote.Status)
	assert.Equal(t, "https://billing.example/quo_1", quote.HostedURL)
	assert.Equal(t, expiresAt, quote.ExpiresAt)

	assert.Equal(t, "cus_1", captured["customer_id"])
	assert.Equal(t, float64(250000), captured["amount"])
	assert.Equal(t, "2026-10-01T12:00:00Z", captured["expires_at"])
}

func TestCreateCustomerValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"billing_email is invalid"}`))
	}))
	defer srv.Close()

	c := New(config.Config{BillingBaseURL: srv.URL, BillingAPIKey: "sk_test"})

	_, err := c.CreateCustomer(context.Background(), "Acme Corp", domain.CustomerTypeCorporate, "USD", "nope")
	require.Error(t, err)

	var apiErr *rest.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Validation())
	assert.Equal(t, "billing_email is invalid", apiErr.Message)
	assert.Equal(t, "billing", apiErr.Platform)
}

func TestCreateCustomerTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(config.Config{BillingBaseURL: srv.URL, BillingAPIKey: "sk_test"})

	_, err := c.CreateCustomer(context.Background(), "Acme Corp", domain.CustomerTypeCorporate, "USD", "ada@acme.io")
	require.Error(t, err)

	var transportErr *rest.TransportError
	assert.ErrorAs(t, err, &transportErr)
}
