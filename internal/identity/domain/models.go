// Package domain defines the identity-platform contract: user and
// organization records owned by the external platform, never by this bot.
package domain

// User is an identity-platform user record.
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Domain    string
	Source    string
}

// Organization is an identity-platform organization record.
type Organization struct {
	ID        string
	Name      string
	Slug      string
	CreatedBy string
	APIKey    string
	Domain    string
	LogoURL   string
}

// CreateUserRequest carries everything needed to provision a user and,
// optionally, an organization.
type CreateUserRequest struct {
	Email         string
	DiscordUserID string
	FirstName     string
	LastName      string
	Domain        string
	// OrganizationName is optional; when present an organization is
	// provisioned alongside the user.
	OrganizationName string
}

// CreateUserResult reports what was provisioned. Organization is nil when no
// organization name was supplied.
type CreateUserResult struct {
	User         *User
	Organization *Organization
}
