package neonbeat

import (
	"context"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Healthcheck probes the server.
func (c *Client) Healthcheck(ctx context.Context) error {
	return c.do(ctx, "health probe", http.MethodGet, HealthcheckEndpoint, nil, nil)
}

// WaitReady polls the health endpoint on the given interval until the
// server answers or ctx is cancelled. The clock is injected so tests
// can use a fake one.
func (c *Client) WaitReady(ctx context.Context, clock clockwork.Clock, interval time.Duration) error {
	for {
		err := c.Healthcheck(ctx)
		if err == nil {
			log.Info().Str("base_url", c.baseURL).Msg("server reachable")
			return nil
		}
		log.Warn().Err(err).Dur("retry_in", interval).Msg("server not reachable yet")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(interval):
		}
	}
}
