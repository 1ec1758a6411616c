package monitor

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/rs/zerolog"

	"github.com/pagesentry/pagesentry/internal/config"
	"github.com/pagesentry/pagesentry/internal/models"
)

func newServiceConfig() *config.GlobalConfig {
	cfg := config.NewDefaultGlobalConfig()
	cfg.Monitor.CheckIntervalSeconds = 1
	cfg.Retry.MaxRetries = 0
	return cfg
}

func TestServiceRecordsRunState(t *testing.T) {
	store := newMemStore()
	channel := &captureChannel{}
	source := &fakeSource{snapshot: snapshotWithText("ok")}

	svc := NewService(
		newServiceConfig(),
		config.TargetConfig{URL: "https://example.com", Selector: "main"},
		store,
		ServiceOptions{Fetcher: source, Channels: []models.AlertChannel{channel}},
		zerolog.Nop(),
	)

	assert.Equal(t, models.PhaseInitializing, svc.RunState().Phase())

	svc.Start()
	require.Eventually(t, func() bool {
		return svc.RunState().LastOutcome() == models.OutcomeInitialState
	}, time.Second, 10*time.Millisecond, "first cycle should record its outcome")

	svc.Stop()
	assert.Equal(t, models.PhaseStopped, svc.RunState().Phase())
	assert.False(t, svc.RunState().LastRunAt().IsZero())
	assert.Zero(t, svc.RunState().ConsecutiveFailureCount())
	assert.Empty(t, channel.Events(), "baseline run must not alert")
}

func TestServiceRunOnce(t *testing.T) {
	store := newMemStore()
	channel := &captureChannel{}
	source := &fakeSource{snapshot: snapshotWithText("once")}

	svc := NewService(
		newServiceConfig(),
		config.TargetConfig{URL: "https://example.com", Selector: "main"},
		store,
		ServiceOptions{Fetcher: source, Channels: []models.AlertChannel{channel}},
		zerolog.Nop(),
	)

	assert.Equal(t, models.OutcomeInitialState, svc.RunOnce())
	assert.Equal(t, models.OutcomeNoChange, svc.RunOnce())
	assert.Equal(t, models.PhaseStopped, svc.RunState().Phase())
	assert.Equal(t, 1, store.saveCount)
}

func TestServiceCountsConsecutiveFailures(t *testing.T) {
	store := newMemStore()
	channel := &captureChannel{}
	source := &fakeSource{err: errors.New("unreachable")}

	svc := NewService(
		newServiceConfig(),
		config.TargetConfig{URL: "https://example.com", Selector: "main"},
		store,
		ServiceOptions{Fetcher: source, Channels: []models.AlertChannel{channel}},
		zerolog.Nop(),
	)

	svc.Start()
	require.Eventually(t, func() bool {
		return svc.RunState().ConsecutiveFailureCount() >= 2
	}, 5*time.Second, 20*time.Millisecond)
	svc.Stop()

	assert.Equal(t, models.OutcomeError, svc.RunState().LastOutcome())
	assert.NotEmpty(t, channel.Events())
}

func TestServiceIndependentInstances(t *testing.T) {
	store := newMemStore()
	cfg := newServiceConfig()

	healthy := NewService(cfg,
		config.TargetConfig{URL: "https://a.example.com", Selector: "main"},
		store,
		ServiceOptions{Fetcher: &fakeSource{snapshot: snapshotWithText("fine")}, Channels: []models.AlertChannel{&captureChannel{}}},
		zerolog.Nop(),
	)
	broken := NewService(cfg,
		config.TargetConfig{URL: "https://b.example.com", Selector: "main"},
		store,
		ServiceOptions{Fetcher: &fakeSource{err: errors.New("down")}, Channels: []models.AlertChannel{&captureChannel{}}},
		zerolog.Nop(),
	)

	require.NotEqual(t, healthy.Identity().Key(), broken.Identity().Key())

	healthy.Start()
	broken.Start()
	require.Eventually(t, func() bool {
		return healthy.RunState().LastOutcome() == models.OutcomeInitialState &&
			broken.RunState().LastOutcome() == models.OutcomeError
	}, 5*time.Second, 20*time.Millisecond)
	healthy.Stop()
	broken.Stop()

	assert.Zero(t, healthy.RunState().ConsecutiveFailureCount())
	assert.Positive(t, broken.RunState().ConsecutiveFailureCount())
}
