// Package neonbeat is the typed HTTP client for the NeonBeat game
// server. Every imperative operation goes through here; none of them
// mutate local session state. State changes only land once the matching
// push event is observed.
package neonbeat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TokenSource supplies the current session credential, if any.
type TokenSource interface {
	Token() string
}

// TokenStore holds the session credential obtained from the push
// channel handshake. It is written once per connection lifetime and
// read by every subsequent command.
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

// Set replaces the stored credential. Called on (re)handshake.
func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Token returns the stored credential, empty before the handshake.
func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Client talks to one NeonBeat server.
type Client struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
}

// NewClient creates a client for the server at baseURL. tokens may be
// nil when no credential will ever be attached (read-only use).
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
	}
}

// SetTimeout overrides the per-request timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// BaseURL returns the configured server base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StreamURL returns the push channel URL for this server.
func (c *Client) StreamURL() string {
	return c.baseURL + StreamEndpoint
}

// do performs one request. Connection failures become
// *TransportUnreachable, non-2xx responses *CommandRejected. The
// response body is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, op, method, endpoint string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", op, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(RequestIDHeader, uuid.New().String())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(AdminTokenHeader, token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportUnreachable{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rejected := &CommandRejected{Op: op, Status: resp.StatusCode, Reason: rejectionReason(raw)}
		log.Debug().Str("op", op).Int("status", resp.StatusCode).Str("reason", rejected.Reason).Msg("command rejected")
		return rejected
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("unmarshal %s response: %w, raw response: %s", op, err, string(raw))
		}
	}
	return nil
}
