package models

import (
	"context"
	"time"
)

// Alert reasons used by the change detector.
const (
	AlertReasonChanged      = "content changed"
	AlertReasonNotFound     = "element/content not found"
	AlertReasonMonitorError = "monitoring error"
)

// AlertEvent is created exactly once per triggering condition and fanned
// out to all configured channels without mutation. PreviousHash and
// CurrentHash are empty for error/not-found alerts where no comparison
// took place.
type AlertEvent struct {
	Reason       string           `json:"reason"`
	Timestamp    time.Time        `json:"timestamp"`
	Identity     ResourceIdentity `json:"identity"`
	PreviousHash string           `json:"previous_hash,omitempty"`
	CurrentHash  string           `json:"current_hash,omitempty"`
	Deltas       []string         `json:"deltas,omitempty"`
}

// AlertChannel is the capability every notification variant implements.
// Deliver must be safe to call from the single monitoring goroutine; the
// dispatcher isolates its failures from other channels.
type AlertChannel interface {
	// Name identifies the channel in logs and delivery summaries.
	Name() string

	// Deliver sends the event. A non-nil error marks this channel's
	// delivery as failed without affecting the others.
	Deliver(ctx context.Context, event AlertEvent) error
}
