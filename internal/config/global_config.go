package config

// GlobalConfig is the root configuration document. Defaults are resolved
// once at load time; components receive the resolved values and never
// re-merge them per call.
type GlobalConfig struct {
	Targets      []TargetConfig     `json:"targets" yaml:"targets" validate:"required,min=1,dive"`
	Monitor      MonitorConfig      `json:"monitor,omitempty" yaml:"monitor,omitempty"`
	Acquisition  AcquisitionConfig  `json:"acquisition,omitempty" yaml:"acquisition,omitempty"`
	Retry        RetryConfig        `json:"retry,omitempty" yaml:"retry,omitempty"`
	Fingerprint  FingerprintConfig  `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Storage      StorageConfig      `json:"storage,omitempty" yaml:"storage,omitempty"`
	Notification NotificationConfig `json:"notification,omitempty" yaml:"notification,omitempty"`
	Log          LogConfig          `json:"log,omitempty" yaml:"log,omitempty"`
}

// NewDefaultGlobalConfig creates a GlobalConfig populated with defaults
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Monitor:      NewDefaultMonitorConfig(),
		Acquisition:  NewDefaultAcquisitionConfig(),
		Retry:        NewDefaultRetryConfig(),
		Fingerprint:  NewDefaultFingerprintConfig(),
		Storage:      NewDefaultStorageConfig(),
		Notification: NewDefaultNotificationConfig(),
		Log:          NewDefaultLogConfig(),
	}
}
