package billing

import (
	"github.com/runportcullis/portcullis-bot/internal/billing/client"
	"github.com/runportcullis/portcullis-bot/internal/billing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billing.service",
	fx.Provide(client.New),
	fx.Provide(service.New),
)
