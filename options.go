package ampemail

import (
	"net/http"
	"strings"
	"time"
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithBaseURL overrides the production endpoint, e.g. to point the client at
// a staging environment or a test server. A trailing slash is trimmed.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout sets the per-request timeout.
// Default is 30 seconds if not specified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient sets a custom HTTP client for all requests.
// Useful for custom transports, proxies, or testing.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithUserAgent overrides the client identification string sent with
// every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}
