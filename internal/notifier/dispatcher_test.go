package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pagesentry/pagesentry/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingChannel struct {
	name      string
	err       error
	panicWith any
	delivered []models.AlertEvent
}

func (rc *recordingChannel) Name() string { return rc.name }

func (rc *recordingChannel) Deliver(_ context.Context, event models.AlertEvent) error {
	if rc.panicWith != nil {
		panic(rc.panicWith)
	}
	rc.delivered = append(rc.delivered, event)
	return rc.err
}

func testEvent() models.AlertEvent {
	return models.AlertEvent{
		Reason:      models.AlertReasonChanged,
		Timestamp:   time.Now(),
		Identity:    models.ResourceIdentity{URL: "https://example.com", Selector: "#x"},
		CurrentHash: "h2",
	}
}

func TestDispatcher_DeliversToAllChannels(t *testing.T) {
	a := &recordingChannel{name: "a"}
	b := &recordingChannel{name: "b"}
	d := NewDispatcher([]models.AlertChannel{a, b}, zerolog.Nop())

	results := d.Dispatch(context.Background(), testEvent())

	require.Len(t, results, 2)
	assert.True(t, results[0].Succeeded())
	assert.True(t, results[1].Succeeded())
	assert.Len(t, a.delivered, 1)
	assert.Len(t, b.delivered, 1)
}

func TestDispatcher_FailureIsolation(t *testing.T) {
	failing := &recordingChannel{name: "failing", err: errors.New("smtp down")}
	healthy := &recordingChannel{name: "healthy"}
	d := NewDispatcher([]models.AlertChannel{failing, healthy}, zerolog.Nop())

	event := testEvent()
	for i := 0; i < 3; i++ {
		results := d.Dispatch(context.Background(), event)
		require.Len(t, results, 2)
		assert.False(t, results[0].Succeeded())
		assert.True(t, results[1].Succeeded(),
			"the healthy channel must succeed on every dispatch despite the failing one")
	}
	assert.Len(t, healthy.delivered, 3)
}

func TestDispatcher_PanicContainment(t *testing.T) {
	panicking := &recordingChannel{name: "panicking", panicWith: "boom"}
	healthy := &recordingChannel{name: "healthy"}
	d := NewDispatcher([]models.AlertChannel{panicking, healthy}, zerolog.Nop())

	var results []DeliveryResult
	require.NotPanics(t, func() {
		results = d.Dispatch(context.Background(), testEvent())
	})

	require.Len(t, results, 2)
	assert.False(t, results[0].Succeeded())
	assert.True(t, results[1].Succeeded())
}

func TestDispatcher_NoChannels(t *testing.T) {
	d := NewDispatcher(nil, zerolog.Nop())
	results := d.Dispatch(context.Background(), testEvent())
	assert.Empty(t, results)
	assert.Equal(t, 0, d.ChannelCount())
}
