package identity

import (
	"github.com/runportcullis/portcullis-bot/internal/identity/client"
	"github.com/runportcullis/portcullis-bot/internal/identity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("identity.service",
	fx.Provide(client.New),
	fx.Provide(client.NewLogoFetcher),
	fx.Provide(service.New),
)
