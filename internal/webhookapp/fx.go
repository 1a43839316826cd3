package webhookapp

import (
	"github.com/runportcullis/portcullis-bot/internal/webhookapp/client"
	"github.com/runportcullis/portcullis-bot/internal/webhookapp/service"
	"go.uber.org/fx"
)

var Module = fx.Module("webhookapp.service",
	fx.Provide(client.New),
	fx.Provide(service.New),
)
