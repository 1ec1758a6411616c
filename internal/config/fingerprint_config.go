package config

// defaultVolatileAttributes lists attribute names that commonly carry
// timestamps or per-request random identifiers and therefore poison
// fingerprint stability.
var defaultVolatileAttributes = []string{
	"nonce",
	"csrf-token",
	"data-timestamp",
	"data-ts",
	"data-nonce",
	"data-random",
	"data-reactid",
}

// FingerprintConfig defines configuration for snapshot canonicalization
type FingerprintConfig struct {
	// IgnoreMinorChanges drops deny-listed volatile attributes before
	// hashing so cosmetic churn does not raise alerts
	IgnoreMinorChanges bool `json:"ignore_minor_changes" yaml:"ignore_minor_changes"`
	// VolatileAttributes overrides the built-in deny-list when non-empty
	VolatileAttributes []string `json:"volatile_attributes,omitempty" yaml:"volatile_attributes,omitempty"`
	// TextPreviewLength bounds the text preview kept in summary metadata
	TextPreviewLength int `json:"text_preview_length,omitempty" yaml:"text_preview_length,omitempty" validate:"omitempty,min=0"`
}

// EffectiveVolatileAttributes returns the configured deny-list, falling
// back to the built-in defaults.
func (fc FingerprintConfig) EffectiveVolatileAttributes() []string {
	if len(fc.VolatileAttributes) > 0 {
		return fc.VolatileAttributes
	}
	return defaultVolatileAttributes
}

// NewDefaultFingerprintConfig creates default fingerprint configuration
func NewDefaultFingerprintConfig() FingerprintConfig {
	return FingerprintConfig{
		IgnoreMinorChanges: false,
		TextPreviewLength:  DefaultTextPreviewLength,
	}
}
