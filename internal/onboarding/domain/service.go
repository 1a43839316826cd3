package domain

import "context"

// RegisterRequest is one registration submission from a guild member.
type RegisterRequest struct {
	GuildID       string
	DiscordUserID string
	Fields        RawSubmission
}

// RegisterResult reports the workflow outcome. On failure the result is still
// returned with whatever references were committed before the failing stage.
type RegisterResult struct {
	Stage      Stage
	Submission *Submission

	IdentityUserID string
	IdentityOrgID  string
	APIKey         string
	WebhookAppID   string
	RoleID         string
	ChannelID      string
	CustomerID     string
	QuoteID        string
	QuoteURL       string

	// Message is the user-visible success reply; empty unless the workflow
	// completed.
	Message string
}

// Service runs the onboarding workflow: one validated submission drives a
// fixed sequence of provisioning calls, short-circuiting on the first fatal
// failure.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
}
