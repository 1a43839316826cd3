package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("bot",
	fx.Provide(NewSession),
	fx.Provide(New),
	fx.Invoke(Run),
)

// Run registers the gateway handlers and ties the websocket connection to
// the application lifecycle.
func Run(lc fx.Lifecycle, log *zap.Logger, session *discordgo.Session, bot *Bot) {
	session.AddHandler(bot.HandleInteraction)
	session.AddHandler(bot.HandleMemberAdd)
	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info("gateway ready",
			zap.String("username", r.User.Username),
			zap.Int("guilds", len(r.Guilds)),
		)
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return session.Open()
		},
		OnStop: func(ctx context.Context) error {
			return session.Close()
		},
	})
}
