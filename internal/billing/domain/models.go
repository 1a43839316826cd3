// Package domain defines the billing-platform contract.
package domain

import "time"

// CustomerType is the billing platform's customer classification.
type CustomerType string

const (
	CustomerTypeCorporate CustomerType = "corporate"
	CustomerTypePerson    CustomerType = "person"
)

// Customer is a billing-platform customer record.
type Customer struct {
	ID           string
	Name         string
	Type         CustomerType
	Currency     string
	BillingEmail string
}

// Quote is a billing-platform quote. Amount is in minor currency units.
type Quote struct {
	ID         string
	CustomerID string
	Amount     int64
	Currency   string
	Status     string
	ExpiresAt  time.Time
	HostedURL  string
}

// CreateCustomerRequest provisions a customer linked to a directory
// organization row. The row must already exist.
type CreateCustomerRequest struct {
	Name           string
	Type           CustomerType
	Currency       string
	BillingEmail   string
	DirectoryOrgID string
}

// CreateQuoteRequest issues a quote for an existing customer. Amount is
// caller-computed; no local positivity check is made.
type CreateQuoteRequest struct {
	CustomerID string
	Amount     int64
	Currency   string
}
