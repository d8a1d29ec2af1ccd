// Package github lists hosted repositories from the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// DefaultHost is the public GitHub host
const DefaultHost = "github.com"

// DefaultTimeout bounds every API request
const DefaultTimeout = 30 * time.Second

// tokenType makes the transport send "Authorization: token <credential>"
const tokenType = "token"

// Client performs the token-authenticated listing requests
type Client struct {
	gh *github.Client
}

type clientOptions struct {
	host    string
	timeout time.Duration
	baseURL string
}

// ClientOption configures a Client
type ClientOption func(*clientOptions)

// WithHost targets a GitHub Enterprise host instead of github.com
func WithHost(host string) ClientOption {
	return func(o *clientOptions) {
		if host = strings.TrimSpace(host); host != "" {
			o.host = host
		}
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithBaseURL points the client at an explicit API root. Used by tests.
func WithBaseURL(u string) ClientOption {
	return func(o *clientOptions) {
		o.baseURL = u
	}
}

// NewClient creates a Client that authenticates every request with token.
func NewClient(ctx context.Context, token string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("empty GitHub token")
	}

	o := clientOptions{host: DefaultHost, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token, TokenType: tokenType},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = o.timeout
	client := github.NewClient(tc)

	switch {
	case o.baseURL != "":
		baseURL, err := parseAPIURL(o.baseURL)
		if err != nil {
			return nil, err
		}
		client.BaseURL = baseURL
		client.UploadURL = baseURL
	case o.host != DefaultHost:
		// GitHub Enterprise API endpoints
		// REST API: https://hostname/api/v3/
		// Upload API: https://hostname/api/uploads/
		baseURL, err := url.Parse(fmt.Sprintf("https://%s/api/v3/", o.host))
		if err != nil {
			return nil, fmt.Errorf("failed to parse base URL for hostname %s: %w", o.host, err)
		}
		uploadURL, err := url.Parse(fmt.Sprintf("https://%s/api/uploads/", o.host))
		if err != nil {
			return nil, fmt.Errorf("failed to parse upload URL for hostname %s: %w", o.host, err)
		}
		client.BaseURL = baseURL
		client.UploadURL = uploadURL
	}

	return &Client{gh: client}, nil
}

// BaseURL returns the API root requests are sent to. It is logged when
// the client is created.
func (c *Client) BaseURL() string {
	return c.gh.BaseURL.String()
}

func parseAPIURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL %s: %w", raw, err)
	}
	return u, nil
}
