package config

import "time"

// LampConfig defines the smart-lamp actuator channel. The lamp signals a
// confirmed change with hue 240 and a not-found/undetermined condition
// with hue 120.
type LampConfig struct {
	Endpoint   string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" validate:"omitempty,url"`
	ChangedHue int    `json:"changed_hue,omitempty" yaml:"changed_hue,omitempty" validate:"omitempty,min=0,max=360"`
	UnknownHue int    `json:"unknown_hue,omitempty" yaml:"unknown_hue,omitempty" validate:"omitempty,min=0,max=360"`
}

// NotificationConfig defines configuration for alert delivery
type NotificationConfig struct {
	AlertWebhookURL       string     `json:"alert_webhook_url,omitempty" yaml:"alert_webhook_url,omitempty" validate:"omitempty,url"`
	WebhookTimeoutSeconds int        `json:"webhook_timeout_seconds,omitempty" yaml:"webhook_timeout_seconds,omitempty" validate:"omitempty,min=1"`
	Lamp                  LampConfig `json:"lamp,omitempty" yaml:"lamp,omitempty"`
}

// WebhookTimeout returns the per-delivery webhook timeout as a duration.
func (nc NotificationConfig) WebhookTimeout() time.Duration {
	secs := nc.WebhookTimeoutSeconds
	if secs <= 0 {
		secs = DefaultWebhookTimeoutSeconds
	}
	return time.Duration(secs) * time.Second
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		AlertWebhookURL:       "",
		WebhookTimeoutSeconds: DefaultWebhookTimeoutSeconds,
		Lamp: LampConfig{
			ChangedHue: DefaultLampChangedHue,
			UnknownHue: DefaultLampUnknownHue,
		},
	}
}
