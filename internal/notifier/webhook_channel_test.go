package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pagesentry/pagesentry/internal/common/errorwrapper"
	"github.com/pagesentry/pagesentry/internal/config"
	"github.com/pagesentry/pagesentry/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookChannel_PostsAlertAsJSON(t *testing.T) {
	var received models.AlertEvent
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	ch := NewWebhookChannel(server.URL, 5*time.Second, zerolog.Nop())
	event := models.AlertEvent{
		Reason:       models.AlertReasonChanged,
		Timestamp:    time.Now().UTC(),
		Identity:     models.ResourceIdentity{URL: "https://example.com", Selector: "#p"},
		PreviousHash: "h1",
		CurrentHash:  "h2",
		Deltas:       []string{"text length changed: 3 -> 5 characters"},
	}

	require.NoError(t, ch.Deliver(context.Background(), event))
	assert.Equal(t, event.Reason, received.Reason)
	assert.Equal(t, event.PreviousHash, received.PreviousHash)
	assert.Equal(t, event.CurrentHash, received.CurrentHash)
	assert.Equal(t, event.Deltas, received.Deltas)
}

func TestWebhookChannel_RejectedAlert(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer server.Close()

	ch := NewWebhookChannel(server.URL, 5*time.Second, zerolog.Nop())
	err := ch.Deliver(context.Background(), models.AlertEvent{Reason: models.AlertReasonNotFound})
	require.Error(t, err)

	var deliveryErr *errorwrapper.DeliveryError
	assert.ErrorAs(t, err, &deliveryErr)
}

func TestLampChannel_HueConvention(t *testing.T) {
	var lastState lampState
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&lastState))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := config.LampConfig{
		Endpoint:   server.URL,
		ChangedHue: config.DefaultLampChangedHue,
		UnknownHue: config.DefaultLampUnknownHue,
	}
	ch := NewLampChannel(cfg, 5*time.Second, zerolog.Nop())

	require.NoError(t, ch.Deliver(context.Background(), models.AlertEvent{Reason: models.AlertReasonChanged}))
	assert.True(t, lastState.On)
	assert.Equal(t, 240, lastState.Hue, "confirmed change signals hue 240")

	require.NoError(t, ch.Deliver(context.Background(), models.AlertEvent{Reason: models.AlertReasonNotFound}))
	assert.Equal(t, 120, lastState.Hue, "undetermined state signals hue 120")

	require.NoError(t, ch.Deliver(context.Background(), models.AlertEvent{Reason: models.AlertReasonMonitorError}))
	assert.Equal(t, 120, lastState.Hue)
}

func TestCallbackChannel(t *testing.T) {
	var got models.AlertEvent
	ch := NewCallbackChannel("custom", func(_ context.Context, event models.AlertEvent) error {
		got = event
		return nil
	})

	assert.Equal(t, "custom", ch.Name())
	require.NoError(t, ch.Deliver(context.Background(), models.AlertEvent{Reason: models.AlertReasonChanged}))
	assert.Equal(t, models.AlertReasonChanged, got.Reason)

	nilCh := NewCallbackChannel("", nil)
	assert.Equal(t, "callback", nilCh.Name())
	assert.Error(t, nilCh.Deliver(context.Background(), models.AlertEvent{}))
}

func TestBuildChannels(t *testing.T) {
	cfg := config.NewDefaultNotificationConfig()
	assert.Empty(t, BuildChannels(cfg, zerolog.Nop()))

	cfg.AlertWebhookURL = "https://hooks.example.com/x"
	cfg.Lamp.Endpoint = "http://lamp.local/api/state"
	channels := BuildChannels(cfg, zerolog.Nop())
	require.Len(t, channels, 2)
	assert.Equal(t, "webhook", channels[0].Name())
	assert.Equal(t, "lamp", channels[1].Name())
}
