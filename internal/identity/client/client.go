package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/runportcullis/portcullis-bot/internal/config"
	"github.com/runportcullis/portcullis-bot/internal/identity/domain"
	"github.com/runportcullis/portcullis-bot/internal/platform/rest"
)

const sourceTag = "discord_bot"

type client struct {
	rest    *rest.Client
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(cfg config.Config) domain.Client {
	return &client{
		rest:    rest.NewClient("identity", cfg.IdentityBaseURL, cfg.IdentityAPIKey),
		baseURL: cfg.IdentityBaseURL,
		apiKey:  cfg.IdentityAPIKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type createUserPayload struct {
	EmailAddress   []string       `json:"email_address"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	PublicMetadata map[string]any `json:"public_metadata"`
}

type userResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (c *client) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	payload := createUserPayload{
		EmailAddress: []string{req.Email},
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PublicMetadata: map[string]any{
			"source":          sourceTag,
			"domain":          req.Domain,
			"discord_user_id": req.DiscordUserID,
		},
	}

	var resp userResponse
	if err := c.rest.Do(ctx, http.MethodPost, "/users", payload, &resp); err != nil {
		return nil, err
	}

	return &domain.User{
		ID:        resp.ID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Domain:    req.Domain,
		Source:    sourceTag,
	}, nil
}

type createOrganizationPayload struct {
	Name           string         `json:"name"`
	Slug           string         `json:"slug"`
	CreatedBy      string         `json:"created_by"`
	PublicMetadata map[string]any `json:"public_metadata"`
}

type organizationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (c *client) CreateOrganization(ctx context.Context, name, slug, createdBy, apiKey string) (*domain.Organization, error) {
	payload := createOrganizationPayload{
		Name:      name,
		Slug:      slug,
		CreatedBy: createdBy,
		PublicMetadata: map[string]any{
			"apiKey": apiKey,
			"source": sourceTag,
		},
	}

	var resp organizationResponse
	if err := c.rest.Do(ctx, http.MethodPost, "/organizations", payload, &resp); err != nil {
		return nil, err
	}

	return &domain.Organization{
		ID:        resp.ID,
		Name:      name,
		Slug:      slug,
		CreatedBy: createdBy,
		APIKey:    apiKey,
	}, nil
}

// UpdateOrganizationLogo uploads the logo as multipart form data; the
// identity platform does not take JSON here, so this bypasses the shared
// REST client.
func (c *client) UpdateOrganizationLogo(ctx context.Context, orgID string, image []byte) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "logo.png")
	if err != nil {
		return &rest.TransportError{Platform: "identity", Err: err}
	}
	if _, err := fw.Write(image); err != nil {
		return &rest.TransportError{Platform: "identity", Err: err}
	}
	if err := mw.Close(); err != nil {
		return &rest.TransportError{Platform: "identity", Err: err}
	}

	url := fmt.Sprintf("%s/organizations/%s/logo", c.baseURL, orgID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, &buf)
	if err != nil {
		return &rest.TransportError{Platform: "identity", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return &rest.TransportError{Platform: "identity", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &rest.APIError{
			Platform: "identity",
			Status:   resp.StatusCode,
			Message:  fmt.Sprintf("logo upload rejected: %s", bytes.TrimSpace(body)),
		}
	}
	return nil
}
