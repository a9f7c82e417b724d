// Package push owns the long-lived server-push connection. It exposes
// typed subscriptions per event kind and performs the authentication
// handshake that yields the session credential for command calls.
package push

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/neonbeat/nb-admin/internal/notify"
)

// EventHandshake is the first event on a fresh connection. Its payload
// carries the session credential for subsequent admin commands.
const EventHandshake = "handshake"

// Handler receives the raw JSON payload of one push event.
type Handler func(data []byte)

// Config holds configuration for the push channel.
type Config struct {
	// URL of the server's event stream, e.g. http://host/sse/admin.
	URL string

	// HTTPClient must not carry a request timeout; the stream is
	// long-lived. Nil means a fresh client without one.
	HTTPClient *http.Client

	// OnHandshake is invoked with the session credential once the
	// handshake event arrives.
	OnHandshake func(token string)

	Notifier notify.Notifier
}

// Channel is one live push connection. Events are dispatched to
// handlers strictly in arrival order on the goroutine running Run.
// There is no internal reconnect: a transport error closes the channel
// and Run returns; reconnecting means calling Connect again.
type Channel struct {
	cfg  Config
	body interface {
		Read(p []byte) (int, error)
		Close() error
	}

	mu       sync.RWMutex
	handlers map[string]Handler
	unknown  func(kind string, data []byte)

	closed    atomic.Bool
	closeOnce sync.Once
}

// Connect opens the push connection. No events before a successful
// connect are recoverable; the caller covers that gap with a snapshot
// pull. Handlers must be registered before Run is called.
func Connect(ctx context.Context, cfg Config) (*Channel, error) {
	if cfg.Notifier == nil {
		cfg.Notifier = notify.LogNotifier{}
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &ChannelError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &ChannelError{Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	log.Info().Str("url", cfg.URL).Msg("push channel connected")

	return &Channel{
		cfg:      cfg,
		body:     resp.Body,
		handlers: make(map[string]Handler),
	}, nil
}

// On registers handler for the named event kind. One handler per kind;
// a later registration replaces the earlier one.
func (c *Channel) On(kind string, handler Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[kind] = handler
}

// OnUnknown registers the fallback for event kinds without a handler.
func (c *Channel) OnUnknown(fn func(kind string, data []byte)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unknown = fn
}

// Run reads the stream and dispatches events until the channel is
// closed or the transport fails. It returns nil after Close and a
// *ChannelError otherwise. Mutations triggered by handlers are
// serialized through this one goroutine.
func (c *Channel) Run() error {
	defer c.Close()

	scanner := bufio.NewScanner(c.body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var kind string
	var data bytes.Buffer
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			c.dispatch(kind, data.Bytes())
			kind = ""
			data.Reset()
		case strings.HasPrefix(line, ":"):
			// comment, keep-alive
		case strings.HasPrefix(line, "event:"):
			kind = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		default:
			// id:, retry: and unknown fields are not used by this protocol
		}
	}

	if c.closed.Load() {
		return nil
	}

	err := scanner.Err()
	if err == nil {
		err = fmt.Errorf("stream closed by server")
	}
	cerr := &ChannelError{Err: err}
	log.Error().Err(cerr).Msg("push channel lost")
	return cerr
}

// Close shuts the connection down. Safe to call more than once.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.body.Close()
		log.Info().Msg("push channel closed")
	})
}

func (c *Channel) dispatch(kind string, data []byte) {
	if kind == "" && len(data) == 0 {
		return
	}

	if kind == EventHandshake {
		c.handleHandshake(data)
		return
	}

	c.mu.RLock()
	handler := c.handlers[kind]
	unknown := c.unknown
	c.mu.RUnlock()

	if handler == nil {
		if unknown != nil {
			unknown(kind, append([]byte(nil), data...))
		}
		return
	}
	handler(append([]byte(nil), data...))
}

// handleHandshake extracts the session credential. A handshake without
// a token is a protocol error, reported but non-fatal to the connection.
func (c *Channel) handleHandshake(data []byte) {
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Token == "" {
		v := &ProtocolViolation{Kind: EventHandshake, Reason: "missing token"}
		log.Error().Err(v).Msg("bad handshake payload")
		c.cfg.Notifier.Errorf("%s", v.Error())
		return
	}
	log.Info().Msg("handshake completed, session credential received")
	if c.cfg.OnHandshake != nil {
		c.cfg.OnHandshake(payload.Token)
	}
}
