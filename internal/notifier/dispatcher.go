package notifier

import (
	"context"
	"time"

	"github.com/pagesentry/pagesentry/internal/common/errorwrapper"
	"github.com/pagesentry/pagesentry/internal/models"
	"github.com/rs/zerolog"
)

// DeliveryResult is the per-channel outcome of one dispatch.
type DeliveryResult struct {
	Channel  string
	Err      error
	Duration time.Duration
}

// Succeeded reports whether this channel delivered.
func (dr DeliveryResult) Succeeded() bool { return dr.Err == nil }

// Dispatcher fans one AlertEvent out to every configured channel.
// Channels are attempted sequentially and independently: one channel's
// failure (or panic) is caught and logged and never prevents the others.
// Dispatch itself never returns an error, only the outcome summary.
type Dispatcher struct {
	channels []models.AlertChannel
	logger   zerolog.Logger
}

// NewDispatcher creates a Dispatcher over the configured channels. Zero
// channels is valid; dispatching then is a no-op.
func NewDispatcher(channels []models.AlertChannel, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		channels: channels,
		logger:   logger.With().Str("component", "AlertDispatcher").Logger(),
	}
}

// ChannelCount returns the number of configured channels.
func (d *Dispatcher) ChannelCount() int {
	return len(d.channels)
}

// Dispatch delivers the event to every channel and returns one result per
// channel, in configuration order. It returns only after every channel
// has completed or failed, so the caller's run-duration accounting stays
// accurate.
func (d *Dispatcher) Dispatch(ctx context.Context, event models.AlertEvent) []DeliveryResult {
	results := make([]DeliveryResult, 0, len(d.channels))

	for _, channel := range d.channels {
		start := time.Now()
		err := d.deliverSafely(ctx, channel, event)
		result := DeliveryResult{
			Channel:  channel.Name(),
			Err:      err,
			Duration: time.Since(start),
		}
		results = append(results, result)

		if err != nil {
			d.logger.Error().
				Err(err).
				Str("channel", channel.Name()).
				Str("reason", event.Reason).
				Str("identity", event.Identity.String()).
				Msg("Alert delivery failed")
		} else {
			d.logger.Info().
				Str("channel", channel.Name()).
				Str("reason", event.Reason).
				Str("identity", event.Identity.String()).
				Msg("Alert delivered")
		}
	}

	return results
}

// deliverSafely contains a single channel delivery, converting panics into
// delivery errors.
func (d *Dispatcher) deliverSafely(ctx context.Context, channel models.AlertChannel, event models.AlertEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errorwrapper.NewDeliveryError(channel.Name(), "channel panicked", errorwrapper.NewError("%v", r))
		}
	}()
	return channel.Deliver(ctx, event)
}
