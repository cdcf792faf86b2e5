// Package email implements the send_email capability's provider-facing
// logic: per-request credential extraction, payload assembly, and the call
// to the Resend HTTP API with normalized outcomes.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mailgate/pkg/logging"
)

// defaultBaseURL is the production Resend API endpoint.
const defaultBaseURL = "https://api.resend.com"

// APIError is a non-success response from the provider.
type APIError struct {
	StatusCode int
	Message    string // "message" field from the response body, when present
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Client talks to the Resend emails endpoint. It holds no credential; the
// API key is supplied per call.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the provider endpoint. An empty value keeps the
// default; tests point this at an httptest server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a Resend client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send issues a single POST to the provider's email endpoint with the
// caller's API key as a bearer token. It returns the provider-assigned id
// ("unknown" when the response carries none). Failures are never retried:
// transport and parse errors come back as-is, non-2xx responses as an
// *APIError carrying the provider's message when one was parseable.
func (c *Client) Send(ctx context.Context, apiKey string, payload map[string]interface{}) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	// The response shape is not a hard contract; id and message are
	// extracted by key when present.
	var parsed map[string]interface{}
	parseErr := json.Unmarshal(data, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if parseErr == nil {
			if msg, ok := parsed["message"].(string); ok && msg != "" {
				apiErr.Message = msg
			}
		}
		logging.Warn("Email", "Provider rejected send: status=%d message=%q", resp.StatusCode, apiErr.Message)
		return "", apiErr
	}

	if parseErr != nil {
		logging.Error("Email", parseErr, "Provider returned status %d with unparseable body", resp.StatusCode)
		return "", fmt.Errorf("unexpected response from provider: %w", parseErr)
	}

	id, _ := parsed["id"].(string)
	if id == "" {
		id = "unknown"
	}
	logging.Info("Email", "Email accepted by provider: id=%s", id)
	return id, nil
}
