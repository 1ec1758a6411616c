package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pagesentry/pagesentry/internal/common/errorwrapper"
	"github.com/pagesentry/pagesentry/internal/config"
	"github.com/pagesentry/pagesentry/internal/models"
	"github.com/rs/zerolog"
)

// lampState is the JSON body the lamp API expects.
type lampState struct {
	On  bool `json:"on"`
	Hue int  `json:"hue"`
}

// LampChannel turns a smart lamp into a visual alert signal. A confirmed
// change sets the configured changed hue (default 240); a not-found or
// error condition, where the state of the target cannot be determined,
// sets the unknown hue (default 120).
type LampChannel struct {
	cfg        config.LampConfig
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewLampChannel creates a lamp channel with a per-delivery timeout.
func NewLampChannel(cfg config.LampConfig, timeout time.Duration, logger zerolog.Logger) *LampChannel {
	return &LampChannel{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "LampChannel").Logger(),
	}
}

// Name identifies the channel in logs and delivery summaries.
func (lc *LampChannel) Name() string { return "lamp" }

// Deliver actuates the lamp according to the alert reason.
func (lc *LampChannel) Deliver(ctx context.Context, event models.AlertEvent) error {
	hue := lc.cfg.UnknownHue
	if event.Reason == models.AlertReasonChanged {
		hue = lc.cfg.ChangedHue
	}

	body, err := json.Marshal(lampState{On: true, Hue: hue})
	if err != nil {
		return errorwrapper.NewDeliveryError(lc.Name(), "encoding lamp state", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, lc.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return errorwrapper.NewDeliveryError(lc.Name(), "creating lamp request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := lc.httpClient.Do(req)
	if err != nil {
		return errorwrapper.NewDeliveryError(lc.Name(), "actuating lamp", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorwrapper.NewDeliveryError(lc.Name(), "lamp rejected the state change",
			errorwrapper.NewHTTPErrorWithURL(resp.StatusCode, "", lc.cfg.Endpoint))
	}

	lc.logger.Debug().Int("hue", hue).Msg("Lamp actuated")
	return nil
}
