package notifier

import (
	"context"

	"github.com/pagesentry/pagesentry/internal/common/errorwrapper"
	"github.com/pagesentry/pagesentry/internal/models"
)

// CallbackChannel adapts an operator-supplied function into an alert
// channel, so programmatic handlers go through the same dispatch and
// failure-isolation path as every other variant.
type CallbackChannel struct {
	name     string
	callback func(ctx context.Context, event models.AlertEvent) error
}

// NewCallbackChannel wraps fn as a channel named name.
func NewCallbackChannel(name string, fn func(ctx context.Context, event models.AlertEvent) error) *CallbackChannel {
	if name == "" {
		name = "callback"
	}
	return &CallbackChannel{name: name, callback: fn}
}

// Name identifies the channel in logs and delivery summaries.
func (cc *CallbackChannel) Name() string { return cc.name }

// Deliver invokes the wrapped callback.
func (cc *CallbackChannel) Deliver(ctx context.Context, event models.AlertEvent) error {
	if cc.callback == nil {
		return errorwrapper.NewDeliveryError(cc.name, "no callback configured", nil)
	}
	return cc.callback(ctx, event)
}
