package bot

import (
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// interactionSession is the slice of the gateway session the responder needs;
// *discordgo.Session satisfies it.
type interactionSession interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// responder guarantees each interaction is acknowledged exactly once. The
// chat platform treats a second acknowledgment as an error; here it is
// demoted to a logged warning and never reaches the user.
type responder struct {
	log     *zap.Logger
	session interactionSession
	ix      *discordgo.Interaction

	mu       sync.Mutex
	deferred bool
	replied  bool
}

func newResponder(log *zap.Logger, session interactionSession, ix *discordgo.Interaction) *responder {
	return &responder{log: log, session: session, ix: ix}
}

// Defer acknowledges the interaction with an ephemeral deferred response so
// slow provisioning work can follow up later.
func (r *responder) Defer() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.deferred || r.replied {
		r.log.Warn("duplicate interaction acknowledgment suppressed",
			zap.String("interaction_id", r.ix.ID),
		)
		return
	}

	err := r.session.InteractionRespond(r.ix, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		r.log.Warn("interaction defer failed", zap.Error(err))
		return
	}
	r.deferred = true
}

// Reply sends the single user-visible reply: a followup edit when the
// interaction was deferred, an ephemeral response otherwise. Repeat calls
// are suppressed with a warning.
func (r *responder) Reply(content string, embeds ...*discordgo.MessageEmbed) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.replied {
		r.log.Warn("duplicate interaction reply suppressed",
			zap.String("interaction_id", r.ix.ID),
		)
		return
	}

	if r.deferred {
		edit := &discordgo.WebhookEdit{}
		if content != "" {
			edit.Content = &content
		}
		if len(embeds) > 0 {
			edit.Embeds = &embeds
		}
		if _, err := r.session.InteractionResponseEdit(r.ix, edit); err != nil {
			r.log.Error("interaction reply failed", zap.Error(err))
			return
		}
		r.replied = true
		return
	}

	err := r.session.InteractionRespond(r.ix, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Embeds:  embeds,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		r.log.Error("interaction reply failed", zap.Error(err))
		return
	}
	r.replied = true
}

// Respond sends a fully formed interaction response, for the cases Reply's
// ephemeral-text shape does not cover (component rows, modal display).
func (r *responder) Respond(resp *discordgo.InteractionResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.deferred || r.replied {
		r.log.Warn("duplicate interaction acknowledgment suppressed",
			zap.String("interaction_id", r.ix.ID),
		)
		return nil
	}

	if err := r.session.InteractionRespond(r.ix, resp); err != nil {
		return err
	}
	r.replied = true
	return nil
}

// Acknowledged reports whether the interaction got its one reply.
func (r *responder) Acknowledged() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deferred || r.replied
}
