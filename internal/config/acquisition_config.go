package config

import "time"

// Acquisition modes.
const (
	AcquisitionModeHTTP     = "http"
	AcquisitionModeHeadless = "headless"
)

// AcquisitionConfig defines configuration for snapshot acquisition
type AcquisitionConfig struct {
	Mode               string `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,oneof=http headless"`
	TimeoutSeconds     int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"omitempty,min=1"`
	UserAgent          string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	InsecureSkipVerify bool   `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// Timeout returns the per-attempt acquisition timeout as a duration.
func (ac AcquisitionConfig) Timeout() time.Duration {
	secs := ac.TimeoutSeconds
	if secs <= 0 {
		secs = DefaultAcquisitionTimeoutSeconds
	}
	return time.Duration(secs) * time.Second
}

// NewDefaultAcquisitionConfig creates default acquisition configuration
func NewDefaultAcquisitionConfig() AcquisitionConfig {
	return AcquisitionConfig{
		Mode:               DefaultAcquisitionMode,
		TimeoutSeconds:     DefaultAcquisitionTimeoutSeconds,
		UserAgent:          DefaultUserAgent,
		InsecureSkipVerify: false,
	}
}

// RetryConfig defines configuration for acquisition retries
type RetryConfig struct {
	// Maximum number of retry attempts after the initial one
	MaxRetries int `json:"max_retries,omitempty" yaml:"max_retries,omitempty" validate:"omitempty,min=0,max=10"`
	// Base delay in milliseconds; attempt N waits N*base before retrying
	BaseDelayMs int `json:"base_delay_ms,omitempty" yaml:"base_delay_ms,omitempty" validate:"omitempty,min=1"`
}

// BaseDelay returns the linear backoff base as a duration.
func (rc RetryConfig) BaseDelay() time.Duration {
	ms := rc.BaseDelayMs
	if ms <= 0 {
		ms = DefaultRetryBaseDelayMs
	}
	return time.Duration(ms) * time.Millisecond
}

// NewDefaultRetryConfig creates default retry configuration
func NewDefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:  DefaultMaxRetries,
		BaseDelayMs: DefaultRetryBaseDelayMs,
	}
}
