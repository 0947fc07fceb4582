package jellyfin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	clientName = "reel"

	// Retry configuration for transient errors
	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Version is the client version reported in the authorization header.
// Overridden at build time via ldflags.
var Version = "dev"

// Client is a Jellyfin API client bound to one server and one user/device
// identity.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	userID      string
	deviceID    string
	log         zerolog.Logger
}

// New creates a new Jellyfin client. baseURL must not have a trailing slash.
func New(baseURL, accessToken, userID, deviceID string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		userID:      userID,
		deviceID:    deviceID,
		log:         zerolog.Nop(),
	}
}

// SetLogger routes the client's request logging to the given logger.
func (c *Client) SetLogger(log zerolog.Logger) {
	c.log = log
}

// SetTimeout overrides the default per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

// BaseURL returns the server's base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// UserID returns the authenticated user's id.
func (c *Client) UserID() string { return c.userID }

// DeviceID returns this client's device id.
func (c *Client) DeviceID() string { return c.deviceID }

// AccessToken returns the server-issued access token.
func (c *Client) AccessToken() string { return c.accessToken }

// Get performs a GET request against the server.
func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	return c.request(ctx, http.MethodGet, path, nil, result)
}

// Post performs a POST request against the server.
func (c *Client) Post(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.request(ctx, http.MethodPost, path, body, result)
}

func (c *Client) request(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var jsonBody []byte
	if body != nil {
		var err error
		jsonBody, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	fullURL := c.baseURL + path
	c.log.Debug().Str("method", method).Str("url", fullURL).Msg("api request")

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		// Wait before retry (skip on first attempt)
		if attempt > 0 {
			wait := baseRetryWait * time.Duration(1<<(attempt-1)) // exponential backoff
			c.log.Debug().Int("attempt", attempt).Dur("wait", wait).Err(lastErr).Msg("retrying request")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		var bodyReader io.Reader
		if jsonBody != nil {
			bodyReader = strings.NewReader(string(jsonBody))
		}

		req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Authorization", c.authHeader())
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue // Retry on network error
		}

		respBody, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		c.log.Debug().Int("status", resp.StatusCode).Str("url", fullURL).Msg("api response")

		if resp.StatusCode == http.StatusNoContent {
			return nil
		}

		// Retry on 5xx server errors
		if resp.StatusCode >= 500 {
			lastErr = &APIError{Status: resp.StatusCode, Body: string(respBody)}
			continue
		}

		// Don't retry 4xx errors
		if resp.StatusCode >= 400 {
			return &APIError{Status: resp.StatusCode, Body: string(respBody)}
		}

		if result != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
		}

		return nil
	}

	return fmt.Errorf("request failed after %d retries: %w", maxRetries, lastErr)
}

// authHeader builds the MediaBrowser authorization header.
func (c *Client) authHeader() string {
	return fmt.Sprintf(
		`MediaBrowser Token=%q, Client=%q, Device=%q, DeviceId=%q, Version=%q`,
		c.accessToken, clientName, clientName+"-cli", c.deviceID, Version,
	)
}

// APIError represents a non-2xx response from the server.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jellyfin API error %d: %s", e.Status, http.StatusText(e.Status))
}

// IsNotFound returns true if the error is a 404 response.
func (e *APIError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsUnauthorized checks whether an error is a 401 response.
func IsUnauthorized(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Status == http.StatusUnauthorized
	}
	return false
}

// BuildURL builds a URL with query parameters.
func BuildURL(path string, params map[string]string) string {
	if len(params) == 0 {
		return path
	}

	u, _ := url.Parse(path)
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
