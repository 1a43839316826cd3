// Package rest is the shared HTTP plumbing for the downstream platform
// adapters. It normalizes authentication, request correlation and error
// classification so the workflow can tell a semantic rejection apart from a
// transport failure regardless of which platform produced it.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client wraps one platform's REST API.
type Client struct {
	platform string
	baseURL  string
	apiKey   string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client (default: 15s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// NewClient returns a Client for one platform. Every request carries a
// bearer token and a fresh X-Request-Id.
func NewClient(platform, baseURL, apiKey string, opts ...Option) *Client {
	cl := &Client{
		platform: platform,
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(cl)
	}
	return cl
}

// Do issues one JSON request and decodes the response into out (when out is
// non-nil). Non-2xx responses become *APIError; anything below the HTTP layer
// becomes *TransportError. Calls are fire-once, never retried.
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return &TransportError{Platform: c.platform, Err: err}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &TransportError{Platform: c.platform, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Platform: c.platform, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Platform: c.platform, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &TransportError{Platform: c.platform, Err: err}
		}
	}
	return nil
}

func (c *Client) decodeError(status int, raw []byte) error {
	apiErr := &APIError{Platform: c.platform, Status: status}

	// Clerk-style: {"errors":[{"code":..., "message":..., "long_message":...}]}
	var structured struct {
		Errors []struct {
			Code        string `json:"code"`
			Message     string `json:"message"`
			LongMessage string `json:"long_message"`
		} `json:"errors"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &structured); err == nil {
		switch {
		case len(structured.Errors) > 0:
			apiErr.Code = structured.Errors[0].Code
			apiErr.Message = structured.Errors[0].Message
			if structured.Errors[0].LongMessage != "" {
				apiErr.Message = structured.Errors[0].LongMessage
			}
		case structured.Message != "":
			apiErr.Message = structured.Message
		case structured.Error != "":
			apiErr.Message = structured.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// APIError is a non-2xx platform response.
type APIError struct {
	Platform string
	Status   int
	Code     string
	Message  string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Platform, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Platform, e.Message, e.Status)
}

// Validation reports whether the platform rejected the payload semantically
// rather than failing on its side.
func (e *APIError) Validation() bool {
	return e.Status >= 400 && e.Status < 500
}

// TransportError is a failure below the platform's API surface: connection
// errors, malformed bodies, marshalling failures.
type TransportError struct {
	Platform string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Platform, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
