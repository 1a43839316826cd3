package directory

import (
	"github.com/runportcullis/portcullis-bot/internal/directory/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("directory",
	fx.Provide(repository.Provide),
)
