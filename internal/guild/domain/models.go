// Package domain defines the chat-platform surface the bot provisions
// against: domain roles, private channels and welcome messages.
package domain

import (
	"context"
	"errors"
)

// DefaultRoleColor is the color given to newly created domain roles.
const DefaultRoleColor = 0x030303

type Role struct {
	ID    string
	Name  string
	Color int
}

type Channel struct {
	ID   string
	Name string
}

type OverwriteType int

const (
	OverwriteRole OverwriteType = iota
	OverwriteMember
)

// PermissionOverwrite grants or denies channel permissions to one role or
// member.
type PermissionOverwrite struct {
	ID    string
	Type  OverwriteType
	Allow int64
	Deny  int64
}

type Embed struct {
	Title       string
	Description string
	Color       int
}

// Connector is the narrow chat-platform capability the provisioning service
// needs. The production implementation is backed by the gateway session;
// tests use fakes.
type Connector interface {
	BotUserID() string
	Roles(ctx context.Context, guildID string) ([]Role, error)
	CreateRole(ctx context.Context, guildID, name string, color int) (*Role, error)
	CreateChannel(ctx context.Context, guildID, name string, overwrites []PermissionOverwrite) (*Channel, error)
	AddMemberRole(ctx context.Context, guildID, userID, roleID string) error
	SendEmbed(ctx context.Context, channelID string, embed Embed) error
}

// ProvisionRequest describes one client channel to set up.
type ProvisionRequest struct {
	GuildID      string
	Domain       string
	Organization string
	MemberUserID string
	FirstName    string
	LastName     string
	TableCount   int64
}

// ProvisionResult reports what was created. On error the result is still
// returned when the channel itself exists, so callers can surface the
// channel reference.
type ProvisionResult struct {
	Role    *Role
	Channel *Channel
	// RoleCreated is false when an existing domain role was reused.
	RoleCreated bool
}

type Service interface {
	ProvisionChannel(ctx context.Context, req ProvisionRequest) (*ProvisionResult, error)
}

var (
	ErrInvalidDomain       = errors.New("invalid_domain")
	ErrInvalidOrganization = errors.New("invalid_organization")
)
