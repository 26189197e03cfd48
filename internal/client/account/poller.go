package account

import (
	"context"
	"time"
)

const defaultPollInterval = 15 * time.Second

// Run polls the server on a bounded interval until ctx is cancelled. Poll
// failures are logged and the loop continues; they never crash the caller.
func (c *Controller) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}

	if err := c.Sync(ctx); err != nil {
		c.log.Warn().Err(err).Msg("initial status sync failed")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Sync(ctx); err != nil {
				c.log.Warn().Err(err).Msg("status sync failed")
			}
		}
	}
}
