package git

import (
	"context"
	"fmt"
	"time"
)

// RetryConfig configures exponential backoff retry behavior.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration // default 5s
	OnRetry    func(attempt int, delay time.Duration, err error)
}

// RetryWithBackoff retries fn with exponential backoff.
// Delays: BaseDelay, BaseDelay*2, BaseDelay*4, ...
// MaxRetries of zero runs fn exactly once.
func RetryWithBackoff(ctx context.Context, cfg RetryConfig, fn func() error) error {
	if cfg.BaseDelay == 0 {
		cfg.BaseDelay = 5 * time.Second
	}

	delay := cfg.BaseDelay
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if attempt >= cfg.MaxRetries {
			if cfg.MaxRetries == 0 {
				return err
			}
			return fmt.Errorf("max retries (%d) exceeded: %w", cfg.MaxRetries, err)
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt+1, delay, err)
		}

		// Sleep with context awareness
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
	}
}
