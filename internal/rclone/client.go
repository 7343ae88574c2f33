package rclone

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is where `rclone rcd` listens unless told otherwise.
	DefaultBaseURL = "http://localhost:5572"

	defaultStatsTimeout = 5 * time.Second
)

// Credentials identify the daemon and the basic-auth user to talk to it as.
type Credentials struct {
	Username string
	Password string
	BaseURL  string
}

// Client represents an HTTP client for the rclone daemon
type Client struct {
	baseURL      string
	authHeader   string
	httpClient   *http.Client
	statsTimeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for every call.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout bounds every request, including the blocking copy. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithStatsTimeout bounds a single core/stats poll.
func WithStatsTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.statsTimeout = d
		}
	}
}

// NewClient creates a new rclone HTTP client
func NewClient(creds Credentials, opts ...Option) *Client {
	baseURL := strings.TrimRight(creds.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    baseURL,
		authHeader: basicAuth(creds.Username, creds.Password),
		// copyurl only returns once the whole download is done
		httpClient:   &http.Client{},
		statsTimeout: defaultStatsTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the daemon address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func basicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

// Call posts payload as JSON to the given RC endpoint and returns the response body verbatim.
func (c *Client) Call(ctx context.Context, endpoint string, payload interface{}) (json.RawMessage, error) {
	if payload == nil {
		payload = struct{}{}
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, &RequestSetupError{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, &RequestSetupError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.authHeader)

	slog.Debug("calling rclone RC", "endpoint", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", endpoint, ctxErr)
		}
		return nil, &TransportError{URL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: c.baseURL, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: body}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("failed to decode response from %s: invalid JSON", endpoint)
	}

	return json.RawMessage(body), nil
}

func (c *Client) callInto(ctx context.Context, endpoint string, payload, response interface{}) error {
	body, err := c.Call(ctx, endpoint, payload)
	if err != nil {
		return err
	}
	if response == nil {
		return nil
	}
	if err := json.Unmarshal(body, response); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// CoreStats fetches the daemon's current transfer statistics.
func (c *Client) CoreStats(ctx context.Context) (*Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, c.statsTimeout)
	defer cancel()

	var stats Stats
	if err := c.callInto(ctx, "core/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Stats is CoreStats without the error: any failure yields nil so that a
// polling loop can never abort the copy it is observing.
func (c *Client) Stats(ctx context.Context) *Stats {
	stats, err := c.CoreStats(ctx)
	if err != nil {
		slog.Debug("core/stats unavailable", "error", err)
		return nil
	}
	return stats
}

// CopyURL asks the daemon to download req.URL into req.Fs at req.Remote and
// blocks until it has finished.
func (c *Client) CopyURL(ctx context.Context, req CopyURLRequest) (*CopyURLResult, error) {
	body, err := c.Call(ctx, "operations/copyurl", req)
	if err != nil {
		return nil, err
	}
	return &CopyURLResult{Raw: body}, nil
}

// Ping checks if the rclone daemon is responsive
func (c *Client) Ping(ctx context.Context) error {
	var resp struct {
		PID int `json:"pid"`
	}
	if err := c.callInto(ctx, "core/pid", nil, &resp); err != nil {
		return err
	}
	slog.Debug("rclone daemon is up", "pid", resp.PID)
	return nil
}

// IsTransportError reports whether err means the daemon never answered.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
