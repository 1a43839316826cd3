package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/runportcullis/portcullis-bot/internal/platform/rest"
	"github.com/stretchr/testify/assert"
)

func TestUserMessageInputError(t *testing.T) {
	err := &InputError{Fields: []FieldError{
		{Field: "domain", Message: "Domain is required."},
		{Field: "table_count", Message: "Table count must be a whole number between 1 and 1000000000."},
	}}

	msg := UserMessage(err)
	assert.Contains(t, msg, "Please fix the following")
	assert.Contains(t, msg, "• Domain is required.")
	assert.Contains(t, msg, "• Table count must be a whole number")
}

func TestUserMessageSurfacesPlatformValidation(t *testing.T) {
	apiErr := &rest.APIError{
		Platform: "identity",
		Status:   422,
		Code:     "form_identifier_exists",
		Message:  "That email address is taken. Please try another.",
	}
	wrapped := &StageError{Stage: StageIdentityCreated, Err: apiErr}

	assert.Equal(t, "❌ That email address is taken. Please try another.", UserMessage(wrapped))
}

func TestUserMessageHidesServerErrors(t *testing.T) {
	apiErr := &rest.APIError{Platform: "billing", Status: 500, Message: "Internal Server Error"}
	wrapped := &StageError{Stage: StageBillingCustomerCreated, Err: apiErr}

	assert.Equal(t, "There was an error processing your request. Please try again.", UserMessage(wrapped))
}

func TestUserMessageHidesTransportDetail(t *testing.T) {
	wrapped := &StageError{
		Stage: StageWebhookAppCreated,
		Err:   &rest.TransportError{Platform: "webhook", Err: errors.New("connection refused")},
	}

	msg := UserMessage(wrapped)
	assert.NotContains(t, msg, "connection refused")
	assert.Equal(t, "There was an error processing your request. Please try again.", msg)
}

func TestUserMessagePartialCompletionMentionsChannel(t *testing.T) {
	err := &PartialCompletionError{
		Stage: StageBillingCustomerCreated,
		Err:   &rest.APIError{Platform: "billing", Status: 503, Message: "unavailable"},
		Committed: Committed{
			IdentityUserID: "user_1",
			IdentityOrgID:  "org_1",
			ChannelID:      "123456",
		},
	}

	msg := UserMessage(err)
	assert.Contains(t, msg, "Part of your setup was completed")
	assert.Contains(t, msg, fmt.Sprintf("<#%s>", "123456"))
}

func TestUserMessagePartialCompletionWithoutChannel(t *testing.T) {
	err := &PartialCompletionError{
		Stage:     StageWebhookAppCreated,
		Err:       errors.New("boom"),
		Committed: Committed{IdentityUserID: "user_1"},
	}

	msg := UserMessage(err)
	assert.Contains(t, msg, "Part of your setup was completed")
	assert.NotContains(t, msg, "<#")
}

func TestStageErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &StageError{Stage: StageOrgCreated, Err: cause}
	assert.ErrorIs(t, err, cause)

	partial := &PartialCompletionError{Stage: StageQuoteIssued, Err: cause}
	assert.ErrorIs(t, partial, cause)
}
