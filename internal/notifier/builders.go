package notifier

import (
	"github.com/pagesentry/pagesentry/internal/config"
	"github.com/pagesentry/pagesentry/internal/models"
	"github.com/rs/zerolog"
)

// BuildChannels assembles the channel list from notification
// configuration. Unconfigured variants are simply omitted.
func BuildChannels(cfg config.NotificationConfig, logger zerolog.Logger) []models.AlertChannel {
	var channels []models.AlertChannel

	if cfg.AlertWebhookURL != "" {
		channels = append(channels, NewWebhookChannel(cfg.AlertWebhookURL, cfg.WebhookTimeout(), logger))
	}
	if cfg.Lamp.Endpoint != "" {
		channels = append(channels, NewLampChannel(cfg.Lamp, cfg.WebhookTimeout(), logger))
	}

	return channels
}
