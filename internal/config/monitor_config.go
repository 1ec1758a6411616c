package config

import "time"

// TargetConfig identifies one monitored resource: the URL plus the CSS
// selector narrowing the observed content. An empty selector observes the
// whole document body.
type TargetConfig struct {
	URL      string `json:"url" yaml:"url" validate:"required,url"`
	Selector string `json:"selector,omitempty" yaml:"selector,omitempty"`
}

// MonitorConfig defines configuration for the polling loop
type MonitorConfig struct {
	CheckIntervalSeconds int  `json:"check_interval_seconds,omitempty" yaml:"check_interval_seconds,omitempty" validate:"omitempty,min=1"`
	Debug                bool `json:"debug" yaml:"debug"`
}

// CheckInterval returns the polling interval as a duration.
func (mc MonitorConfig) CheckInterval() time.Duration {
	secs := mc.CheckIntervalSeconds
	if secs <= 0 {
		secs = DefaultCheckIntervalSeconds
	}
	return time.Duration(secs) * time.Second
}

// NewDefaultMonitorConfig creates default monitor configuration
func NewDefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		CheckIntervalSeconds: DefaultCheckIntervalSeconds,
		Debug:                false,
	}
}
