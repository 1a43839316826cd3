package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/runportcullis/portcullis-bot/internal/platform/rest"
)

// Stage identifies one step of the onboarding workflow.
type Stage string

const (
	StageReceived               Stage = "received"
	StageValidated              Stage = "validated"
	StageIdentityCreated        Stage = "identity_created"
	StageOrgCreated             Stage = "org_created"
	StageWebhookAppCreated      Stage = "webhook_app_created"
	StageDirectoryPersisted     Stage = "directory_persisted"
	StageChannelProvisioned     Stage = "channel_provisioned"
	StageBillingCustomerCreated Stage = "billing_customer_created"
	StageQuoteIssued            Stage = "quote_issued"
	StageCompleted              Stage = "completed"
)

// FieldError is one human-readable validation message.
type FieldError struct {
	Field   string
	Message string
}

// InputError reports form-level validation failures. When it is returned, no
// external call has been made.
type InputError struct {
	Fields []FieldError
}

func (e *InputError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "invalid submission: " + strings.Join(msgs, " ")
}

// StageError wraps a failure with the stage it happened in. Records committed
// by earlier stages stay in place; there is no rollback transition.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// PartialCompletionError is a StageError that happened after at least one
// durable record was committed. Committed carries the references a human
// operator needs for manual reconciliation.
type PartialCompletionError struct {
	Stage     Stage
	Err       error
	Committed Committed
}

// Committed lists the durable references created before the failure. Empty
// strings mean the corresponding record was never created.
type Committed struct {
	IdentityUserID string
	IdentityOrgID  string
	WebhookAppID   string
	RoleID         string
	ChannelID      string
	CustomerID     string
}

func (e *PartialCompletionError) Error() string {
	return fmt.Sprintf("stage %s failed after earlier stages committed: %v", e.Stage, e.Err)
}

func (e *PartialCompletionError) Unwrap() error { return e.Err }

// UserMessage converts a workflow error into the single user-visible reply.
// Platform validation messages are surfaced verbatim; transport and partial
// failures get generic wording with the detail left to the logs.
func UserMessage(err error) string {
	var input *InputError
	if errors.As(err, &input) {
		msgs := make([]string, 0, len(input.Fields))
		for _, f := range input.Fields {
			msgs = append(msgs, "• "+f.Message)
		}
		return "Please fix the following and try again:\n" + strings.Join(msgs, "\n")
	}

	var apiErr *rest.APIError
	if errors.As(err, &apiErr) && apiErr.Validation() {
		return "❌ " + apiErr.Message
	}

	var partial *PartialCompletionError
	if errors.As(err, &partial) {
		msg := "There was an error processing your registration. Part of your setup was completed; our team will follow up to finish it."
		if partial.Committed.ChannelID != "" {
			msg += fmt.Sprintf(" Your channel <#%s> is ready in the meantime.", partial.Committed.ChannelID)
		}
		return msg
	}

	return "There was an error processing your request. Please try again."
}
