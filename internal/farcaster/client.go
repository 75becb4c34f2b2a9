// Package farcaster resolves Farcaster identities to on-chain addresses via
// the Neynar API. The service treats any resolution failure uniformly as
// "cannot proceed"; no retries are attempted.
package farcaster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Resolution errors.
var (
	ErrUserNotFound = errors.New("farcaster user not found")
	ErrNoAddress    = errors.New("farcaster user has no custody address")
)

// Resolver maps an opaque user identifier to an on-chain address.
type Resolver interface {
	ResolveAddress(ctx context.Context, fid string) (string, error)
}

// Client is a Neynar v2 API client.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a Neynar client. A zero timeout falls back to 5s.
func NewClient(baseURL, apiKey string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		http:    newHTTPClient(timeout),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newHTTPClient builds an HTTP client with conservative timeouts for a
// synchronous, request-scoped upstream call.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: timeout,
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// bulkUsersResponse is the subset of the Neynar bulk-users payload we read.
type bulkUsersResponse struct {
	Users []struct {
		FID            int64  `json:"fid"`
		Username       string `json:"username"`
		CustodyAddress string `json:"custody_address"`
	} `json:"users"`
}

// ResolveAddress looks up the custody address for a FID.
func (c *Client) ResolveAddress(ctx context.Context, fid string) (string, error) {
	endpoint := fmt.Sprintf("%s/v2/farcaster/user/bulk?fids=%s", c.baseURL, url.QueryEscape(fid))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("neynar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrUserNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("neynar responded %d", resp.StatusCode)
	}

	var body bulkUsersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode neynar response: %w", err)
	}

	if len(body.Users) == 0 {
		return "", ErrUserNotFound
	}
	address := body.Users[0].CustodyAddress
	if address == "" {
		return "", ErrNoAddress
	}
	return address, nil
}
