// Package domain contains persistence models for the directory store.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// UserRecord is the denormalized copy of an identity-platform user,
// keyed by the ID the identity platform issued.
type UserRecord struct {
	ID             string            `gorm:"primaryKey" json:"id"`
	Email          string            `gorm:"type:text;not null" json:"email"`
	DiscordUserID  string            `gorm:"column:discord_user_id;type:text;not null" json:"discord_user_id"`
	OrganizationID string            `gorm:"column:organization_id;type:text" json:"organization_id"`
	FirstName      string            `gorm:"column:first_name;type:text;not null" json:"first_name"`
	LastName       string            `gorm:"column:last_name;type:text;not null" json:"last_name"`
	Domain         string            `gorm:"type:text;not null;index" json:"domain"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (UserRecord) TableName() string { return "users" }

// OrganizationRecord is the denormalized copy of an identity-platform
// organization, keyed by the ID the identity platform issued.
type OrganizationRecord struct {
	ID                string            `gorm:"primaryKey" json:"id"`
	Name              string            `gorm:"type:text;not null" json:"name"`
	Slug              string            `gorm:"type:text;not null" json:"slug"`
	CreatedBy         string            `gorm:"column:created_by;type:text;not null" json:"created_by"`
	APIKey            string            `gorm:"column:api_key;type:text;not null" json:"api_key"`
	Domain            string            `gorm:"type:text;index" json:"domain"`
	BillingCustomerID string            `gorm:"column:billing_customer_id;type:text" json:"billing_customer_id"`
	LogoURL           string            `gorm:"column:logo_url;type:text" json:"logo_url"`
	Metadata          datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt         time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (OrganizationRecord) TableName() string { return "organizations" }
