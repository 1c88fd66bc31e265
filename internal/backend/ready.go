package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// WaitReady polls the health path until it answers 2xx or maxWait elapses.
// 4xx answers other than 429 stop the wait immediately.
func (c *Client) WaitReady(ctx context.Context, healthPath string, maxWait time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = maxWait

	probe := func() error {
		resp, err := c.Get(ctx, healthPath, nil)
		if err != nil {
			return err
		}
		if resp.IsSuccess() {
			return nil
		}
		err = fmt.Errorf("health check returned status %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != 429 {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		log.Warn().Err(err).Dur("retry_in", next).Msg("backend not ready")
	}

	if err := backoff.RetryNotify(probe, backoff.WithContext(b, ctx), notify); err != nil {
		return fmt.Errorf("backend not ready: %w", err)
	}
	return nil
}
