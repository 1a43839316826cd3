// Package domain defines the webhook-delivery platform contract: one
// delivery app per client organization.
package domain

import (
	"context"
	"errors"
)

type Service interface {
	// CreateApp provisions a delivery app named after the organization and
	// returns the platform-issued app ID.
	CreateApp(ctx context.Context, organizationName string) (string, error)
}

// Client is the webhook platform's API surface consumed by this bot.
type Client interface {
	CreateApp(ctx context.Context, name, description string) (string, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	// ErrProvisioningFailed hides the underlying transport detail from end
	// users; the detail is logged instead.
	ErrProvisioningFailed = errors.New("webhook_app_provisioning_failed")
)
