// Package statsapi is the client for the public MLB Stats API. It implements
// provider.ScheduleProvider and provider.TeamLookup.
//
// The API needs no auth and does not paginate the endpoints used here.
// Outgoing calls are throttled via a token bucket limiter.
package statsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public Stats API root.
	DefaultBaseURL = "https://statsapi.mlb.com/api/v1"

	providerName = "statsapi"
	sportIDMLB   = 1
)

// Options tunes a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL           string
	RequestsPerMinute int
	HTTPClient        *http.Client

	// GameTypes restricts the schedule to these game types ("R", "F", ...).
	// Empty fetches every type.
	GameTypes []string

	// Season selects the team list; zero means the current year.
	Season int
}

// Client is the shared HTTP client for all Stats API endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	gameTypes  []string
	season     int
	limiter    *rate.Limiter
	logger     *slog.Logger

	mu    sync.Mutex
	teams []teamRaw
}

// NewClient creates a Stats API client with rate limiting.
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = 120
	}
	if opts.Season == 0 {
		opts.Season = time.Now().Year()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	rps := float64(opts.RequestsPerMinute) / 60.0
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		gameTypes:  opts.GameTypes,
		season:     opts.Season,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// get performs a rate-limited GET request and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	c.logger.Debug("Stats API request", "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("statsapi %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
