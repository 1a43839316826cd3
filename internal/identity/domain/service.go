package domain

import (
	"context"
	"errors"
)

// Service provisions identity records and mirrors them into the directory
// store. The fine-grained operations exist so the onboarding workflow can
// attribute a failure to the exact stage it happened in; CreateUser composes
// them for the direct command surface.
type Service interface {
	// CreateUser provisions the user and, when an organization name is
	// present, the organization, then persists both to the directory.
	CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResult, error)

	// ProvisionUser creates the platform user record only.
	ProvisionUser(ctx context.Context, req CreateUserRequest) (*User, error)

	// ProvisionOrganization derives the API key and fetches the logo before
	// creating the platform organization; failure of either aborts the
	// creation. The directory is not touched.
	ProvisionOrganization(ctx context.Context, name, createdBy, domain string) (*Organization, error)

	// PersistDirectory upserts the organization row (when org is non-nil)
	// and the user row. The two upserts are independent; a partial write is
	// surfaced, never reconciled.
	PersistDirectory(ctx context.Context, user *User, discordUserID string, org *Organization) error
}

// Client is the identity platform's API surface consumed by this bot.
type Client interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	CreateOrganization(ctx context.Context, name, slug, createdBy, apiKey string) (*Organization, error)
	UpdateOrganizationLogo(ctx context.Context, orgID string, image []byte) error
}

// LogoFetcher retrieves a logo image keyed by domain. It returns the image
// bytes and the canonical URL the image was fetched from.
type LogoFetcher interface {
	Fetch(ctx context.Context, domain string) ([]byte, string, error)
}

var (
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidName  = errors.New("invalid_name")
)
