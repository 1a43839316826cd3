package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/runportcullis/portcullis-bot/internal/config"
	"github.com/runportcullis/portcullis-bot/internal/identity/domain"
	"github.com/runportcullis/portcullis-bot/internal/platform/rest"
)

type logoFetcher struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewLogoFetcher(cfg config.Config) domain.LogoFetcher {
	return &logoFetcher{
		baseURL: strings.TrimRight(cfg.LogoBaseURL, "/"),
		token:   cfg.LogoToken,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *logoFetcher) Fetch(ctx context.Context, domainName string) ([]byte, string, error) {
	logoURL := fmt.Sprintf("%s/%s?token=%s", f.baseURL, url.PathEscape(domainName), url.QueryEscape(f.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, logoURL, nil)
	if err != nil {
		return nil, "", &rest.TransportError{Platform: "logo", Err: err}
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, "", &rest.TransportError{Platform: "logo", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &rest.APIError{
			Platform: "logo",
			Status:   resp.StatusCode,
			Message:  fmt.Sprintf("no logo available for %s", domainName),
		}
	}

	image, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &rest.TransportError{Platform: "logo", Err: err}
	}

	return image, logoURL, nil
}
