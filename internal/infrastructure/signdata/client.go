package signdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"starcast/internal/bootstrap/config"
	"starcast/internal/errs"
	"starcast/internal/ports"
)

// ErrNotConfigured is returned when no base URL is set for the fallback API.
var ErrNotConfigured = errors.New("sign data source is not configured")

const (
	maxAttempts = 3
	backoffStep = 300 * time.Millisecond
)

// Client talks to the third-party astrology-data API. The upstream is flaky,
// so requests are attempted up to three times with linearly increasing
// delay before the caller falls back to the static payload.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
}

var _ ports.SignDataSource = (*Client)(nil)

func NewClient(cfg config.SignDataConfig) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = maxAttempts - 1
	rc.Backoff = linearBackoff
	rc.Logger = nil
	rc.HTTPClient.Timeout = cfg.Timeout

	return &Client{
		baseURL: cfg.BaseURL,
		http:    rc,
	}
}

// linearBackoff waits 300ms after the first failure, 600ms after the second.
func linearBackoff(_, _ time.Duration, attemptNum int, _ *http.Response) time.Duration {
	return time.Duration(attemptNum+1) * backoffStep
}

func (c *Client) Fetch(ctx context.Context, sign, day string) (ports.SignData, error) {
	if ctx == nil {
		return ports.SignData{}, errors.New("context is required")
	}
	if c.baseURL == "" {
		return ports.SignData{}, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/?sign=%s&day=%s", c.baseURL, url.QueryEscape(sign), url.QueryEscape(day))
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return ports.SignData{}, errs.Wrap(err, "build sign data request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ports.SignData{}, errs.Wrap(err, "fetch sign data")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.SignData{}, fmt.Errorf("sign data API returned status %d", resp.StatusCode)
	}

	var data ports.SignData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return ports.SignData{}, errs.Wrap(err, "decode sign data response")
	}
	return data, nil
}
