package acquisition

import (
	"context"
	"time"

	"github.com/pagesentry/pagesentry/internal/common/errorwrapper"
	"github.com/pagesentry/pagesentry/internal/config"
	"github.com/pagesentry/pagesentry/internal/models"
	"github.com/rs/zerolog"
)

// Retrier wraps a Fetcher with bounded linear backoff. Attempt N (1-based)
// that fails waits baseDelay*N before the next try; after maxRetries
// retries the last cause is surfaced as an AcquisitionError. Every attempt
// runs under its own timeout so a hung acquisition cannot stall the
// scheduler indefinitely.
type Retrier struct {
	fetcher        Fetcher
	maxRetries     int
	baseDelay      time.Duration
	attemptTimeout time.Duration
	logger         zerolog.Logger
}

// NewRetrier creates a Retrier around the given fetcher.
func NewRetrier(fetcher Fetcher, retryCfg config.RetryConfig, attemptTimeout time.Duration, logger zerolog.Logger) *Retrier {
	return &Retrier{
		fetcher:        fetcher,
		maxRetries:     retryCfg.MaxRetries,
		baseDelay:      retryCfg.BaseDelay(),
		attemptTimeout: attemptTimeout,
		logger:         logger.With().Str("component", "AcquisitionRetrier").Logger(),
	}
}

// Fetch acquires a snapshot, retrying failed attempts. Attempts carry no
// state between them; each is an independent read. Context cancellation
// aborts both waiting and in-flight attempts.
func (r *Retrier) Fetch(ctx context.Context, identity models.ResourceIdentity) (*models.Snapshot, error) {
	totalAttempts := r.maxRetries + 1
	var lastErr error

	for attempt := 1; attempt <= totalAttempts; attempt++ {
		snapshot, err := r.fetchOnce(ctx, identity)
		if err == nil {
			return snapshot, nil
		}
		lastErr = err

		r.logger.Warn().
			Err(err).
			Str("identity", identity.String()).
			Int("attempt", attempt).
			Int("max_attempts", totalAttempts).
			Msg("Acquisition attempt failed")

		if ctx.Err() != nil {
			break
		}
		if attempt == totalAttempts {
			break
		}

		delay := r.baseDelay * time.Duration(attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			lastErr = ctx.Err()
		}
		if ctx.Err() != nil {
			break
		}
	}

	r.logger.Error().
		Err(lastErr).
		Str("identity", identity.String()).
		Int("attempts", totalAttempts).
		Msg("Acquisition failed, retries exhausted")

	return nil, errorwrapper.NewAcquisitionError(identity.URL, totalAttempts, lastErr)
}

func (r *Retrier) fetchOnce(ctx context.Context, identity models.ResourceIdentity) (*models.Snapshot, error) {
	attemptCtx := ctx
	if r.attemptTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, r.attemptTimeout)
		defer cancel()
	}
	return r.fetcher.Fetch(attemptCtx, identity)
}
