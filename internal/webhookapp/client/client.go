package client

import (
	"context"
	"net/http"

	"github.com/runportcullis/portcullis-bot/internal/config"
	"github.com/runportcullis/portcullis-bot/internal/platform/rest"
	"github.com/runportcullis/portcullis-bot/internal/webhookapp/domain"
)

type client struct {
	rest *rest.Client
}

func New(cfg config.Config) domain.Client {
	return &client{
		rest: rest.NewClient("webhook", cfg.WebhookBaseURL, cfg.WebhookAPIKey),
	}
}

type createAppPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type appResponse struct {
	ID string `json:"id"`
}

func (c *client) CreateApp(ctx context.Context, name, description string) (string, error) {
	payload := createAppPayload{Name: name, Description: description}

	var resp appResponse
	if err := c.rest.Do(ctx, http.MethodPost, "/app/", payload, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}
