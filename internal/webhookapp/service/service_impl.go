package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/runportcullis/portcullis-bot/internal/webhookapp/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log    *zap.Logger
	Client domain.Client
}

type Service struct {
	log    *zap.Logger
	client domain.Client
}

func New(p Params) domain.Service {
	return &Service{
		log:    p.Log.Named("webhookapp.service"),
		client: p.Client,
	}
}

// CreateApp is a single fire-once call. Failures are logged with full detail
// and surfaced as a generic provisioning error.
func (s *Service) CreateApp(ctx context.Context, organizationName string) (string, error) {
	name := strings.TrimSpace(organizationName)
	if name == "" {
		return "", domain.ErrInvalidName
	}

	appID, err := s.client.CreateApp(ctx, name, fmt.Sprintf("App for %s", name))
	if err != nil {
		s.log.Error("webhook app creation failed",
			zap.String("organization", name),
			zap.Error(err),
		)
		return "", domain.ErrProvisioningFailed
	}

	s.log.Info("webhook app created",
		zap.String("organization", name),
		zap.String("app_id", appID),
	)
	return appID, nil
}
