// Package provision obtains a receiving URL from the webhook.site token API.
package provision

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hookalert/internal/platform/config"
)

type Client struct {
	apiURL string
	httpc  *http.Client
}

func New(cfg config.ProvisionerConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiURL: cfg.APIURL,
		httpc:  &http.Client{Timeout: timeout},
	}
}

// CreateWebhook POSTs to the token API and returns the receiving URL from the
// response. Any transport error or non-2xx status is returned to the caller;
// the startup sequence treats that as fatal.
func (c *Client) CreateWebhook(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("create webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("create webhook: HTTP %d from %s", resp.StatusCode, c.apiURL)
	}

	var token struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decode webhook response: %w", err)
	}
	if token.URL == "" {
		return "", fmt.Errorf("webhook response from %s has no url", c.apiURL)
	}

	return token.URL, nil
}
