package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/runportcullis/portcullis-bot/internal/config"
)

// NewSession builds the gateway session. The connection itself is opened by
// the fx lifecycle hook in Run.
func NewSession(cfg config.Config) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}

	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	return s, nil
}
