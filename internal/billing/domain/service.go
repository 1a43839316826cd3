package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
	CreateQuote(ctx context.Context, req CreateQuoteRequest) (*Quote, error)
}

// Client is the billing platform's API surface consumed by this bot.
type Client interface {
	CreateCustomer(ctx context.Context, name string, t CustomerType, currency, billingEmail string) (*Customer, error)
	CreateQuote(ctx context.Context, customerID string, amount int64, currency string, expiresAt time.Time) (*Quote, error)
}

var (
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidType         = errors.New("invalid_type")
	ErrInvalidEmail        = errors.New("invalid_email")
	ErrInvalidCustomerID   = errors.New("invalid_customer_id")
	ErrOrganizationMissing = errors.New("organization_missing")
	// ErrNoCustomerID means the platform acknowledged the create but
	// returned no identifier; treated as a hard failure.
	ErrNoCustomerID = errors.New("no_customer_id_returned")
)
