package onboarding

import (
	"github.com/runportcullis/portcullis-bot/internal/onboarding/service"
	"go.uber.org/fx"
)

var Module = fx.Module("onboarding.service",
	fx.Provide(service.New),
)
