package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/runportcullis/portcullis-bot/internal/billing"
	"github.com/runportcullis/portcullis-bot/internal/bot"
	"github.com/runportcullis/portcullis-bot/internal/config"
	"github.com/runportcullis/portcullis-bot/internal/directory"
	"github.com/runportcullis/portcullis-bot/internal/guild"
	"github.com/runportcullis/portcullis-bot/internal/identity"
	"github.com/runportcullis/portcullis-bot/internal/observability"
	"github.com/runportcullis/portcullis-bot/internal/onboarding"
	"github.com/runportcullis/portcullis-bot/internal/webhookapp"
	"github.com/runportcullis/portcullis-bot/pkg/db"
	"github.com/runportcullis/portcullis-bot/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		observability.Module,

		directory.Module,
		identity.Module,
		billing.Module,
		webhookapp.Module,
		guild.Module,
		onboarding.Module,
		bot.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
