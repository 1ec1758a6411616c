package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pagesentry/pagesentry/internal/common/errorwrapper"
	"github.com/pagesentry/pagesentry/internal/models"
	"github.com/rs/zerolog"
)

// WebhookChannel POSTs the AlertEvent as a JSON document to a configured
// endpoint. Any 2xx response counts as delivered.
type WebhookChannel struct {
	webhookURL string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewWebhookChannel creates a webhook channel with a per-delivery timeout.
func NewWebhookChannel(webhookURL string, timeout time.Duration, logger zerolog.Logger) *WebhookChannel {
	return &WebhookChannel{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "WebhookChannel").Logger(),
	}
}

// Name identifies the channel in logs and delivery summaries.
func (wc *WebhookChannel) Name() string { return "webhook" }

// Deliver sends the event.
func (wc *WebhookChannel) Deliver(ctx context.Context, event models.AlertEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errorwrapper.NewDeliveryError(wc.Name(), "encoding alert payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wc.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return errorwrapper.NewDeliveryError(wc.Name(), "creating webhook request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := wc.httpClient.Do(req)
	if err != nil {
		return errorwrapper.NewDeliveryError(wc.Name(), "posting webhook", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errorwrapper.NewDeliveryError(wc.Name(), "webhook rejected the alert",
			errorwrapper.NewHTTPErrorWithURL(resp.StatusCode, string(body), wc.webhookURL))
	}

	wc.logger.Debug().Int("status_code", resp.StatusCode).Msg("Webhook accepted alert")
	return nil
}
