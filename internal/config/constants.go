package config

const (
	// Monitor defaults
	DefaultCheckIntervalSeconds = 300

	// Acquisition defaults
	DefaultAcquisitionMode           = "http"
	DefaultAcquisitionTimeoutSeconds = 30
	DefaultUserAgent                 = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// Retry defaults
	DefaultMaxRetries       = 3
	DefaultRetryBaseDelayMs = 1000

	// Fingerprint defaults
	DefaultTextPreviewLength = 512

	// Storage defaults
	DefaultStorageBackend = "file"
	DefaultStateDir       = "state"
	DefaultSQLitePath     = "state/pagesentry.db"

	// Notification defaults
	DefaultWebhookTimeoutSeconds = 15
	DefaultLampChangedHue        = 240
	DefaultLampUnknownHue        = 120

	// Log defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)
