package bot

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sessionFake struct {
	respondErr error
	editErr    error

	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit
}

func (f *sessionFake) InteractionRespond(ix *discordgo.Interaction, resp *discordgo.InteractionResponse, opts ...discordgo.RequestOption) error {
	if f.respondErr != nil {
		return f.respondErr
	}
	f.responses = append(f.responses, resp)
	return nil
}

func (f *sessionFake) InteractionResponseEdit(ix *discordgo.Interaction, edit *discordgo.WebhookEdit, opts ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.editErr != nil {
		return nil, f.editErr
	}
	f.edits = append(f.edits, edit)
	return &discordgo.Message{}, nil
}

func newTestResponder(f *sessionFake) *responder {
	return newResponder(zap.NewNop(), f, &discordgo.Interaction{ID: "ix_1"})
}

func TestDeferThenReplyEdits(t *testing.T) {
	f := &sessionFake{}
	r := newTestResponder(f)

	r.Defer()
	require.Len(t, f.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, f.responses[0].Type)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, f.responses[0].Data.Flags)

	r.Reply("done")
	require.Len(t, f.edits, 1)
	require.NotNil(t, f.edits[0].Content)
	assert.Equal(t, "done", *f.edits[0].Content)
	assert.True(t, r.Acknowledged())
}

func TestReplyWithoutDeferRespondsEphemeral(t *testing.T) {
	f := &sessionFake{}
	r := newTestResponder(f)

	r.Reply("hello")
	require.Len(t, f.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, f.responses[0].Type)
	assert.Equal(t, "hello", f.responses[0].Data.Content)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, f.responses[0].Data.Flags)
	assert.Empty(t, f.edits)
}

func TestDuplicateDeferSuppressed(t *testing.T) {
	f := &sessionFake{}
	r := newTestResponder(f)

	r.Defer()
	r.Defer()
	assert.Len(t, f.responses, 1)
}

func TestDuplicateReplySuppressed(t *testing.T) {
	f := &sessionFake{}
	r := newTestResponder(f)

	r.Defer()
	r.Reply("first")
	r.Reply("second")
	require.Len(t, f.edits, 1)
	assert.Equal(t, "first", *f.edits[0].Content)
}

func TestDeferAfterReplySuppressed(t *testing.T) {
	f := &sessionFake{}
	r := newTestResponder(f)

	r.Reply("hello")
	r.Defer()
	assert.Len(t, f.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, f.responses[0].Type)
}

func TestDeferFailureAllowsDirectReply(t *testing.T) {
	f := &sessionFake{respondErr: errors.New("interaction expired")}
	r := newTestResponder(f)

	r.Defer()
	assert.False(t, r.Acknowledged())

	f.respondErr = nil
	r.Reply("recovered")
	require.Len(t, f.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, f.responses[0].Type)
}

func TestRespondMarksAcknowledged(t *testing.T) {
	f := &sessionFake{}
	r := newTestResponder(f)

	require.NoError(t, r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{CustomID: "modal"},
	}))
	assert.True(t, r.Acknowledged())

	r.Reply("again")
	assert.Len(t, f.responses, 1)
}

func TestReplyWithEmbeds(t *testing.T) {
	f := &sessionFake{}
	r := newTestResponder(f)

	r.Defer()
	r.Reply("", &discordgo.MessageEmbed{Title: "Quote Created"})
	require.Len(t, f.edits, 1)
	assert.Nil(t, f.edits[0].Content)
	require.NotNil(t, f.edits[0].Embeds)
	assert.Equal(t, "Quote Created", (*f.edits[0].Embeds)[0].Title)
}
