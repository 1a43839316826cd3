package guild

import (
	"github.com/runportcullis/portcullis-bot/internal/guild/discord"
	"github.com/runportcullis/portcullis-bot/internal/guild/service"
	"go.uber.org/fx"
)

var Module = fx.Module("guild.service",
	fx.Provide(discord.NewConnector),
	fx.Provide(service.New),
)
