package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository persists denormalized identity records. Both upserts are
// last-write-wins on the primary key and independently idempotent; there is
// no transactional linkage between the two tables.
type Repository interface {
	UpsertUser(ctx context.Context, db *gorm.DB, user *UserRecord) error
	UpsertOrganization(ctx context.Context, db *gorm.DB, org *OrganizationRecord) error
	FindUserByID(ctx context.Context, db *gorm.DB, id string) (*UserRecord, error)
	FindOrganizationByID(ctx context.Context, db *gorm.DB, id string) (*OrganizationRecord, error)
	SetBillingCustomerID(ctx context.Context, db *gorm.DB, orgID, customerID string) error
}

var (
	ErrInvalidID = errors.New("invalid_id")
	ErrNotFound  = errors.New("not_found")
)
