package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	assert.Equal(t, DefaultCheckIntervalSeconds, cfg.Monitor.CheckIntervalSeconds)
	assert.Equal(t, AcquisitionModeHTTP, cfg.Acquisition.Mode)
	assert.Equal(t, DefaultMaxRetries, cfg.Retry.MaxRetries)
	assert.Equal(t, StorageBackendFile, cfg.Storage.Backend)
	assert.Equal(t, DefaultLampChangedHue, cfg.Notification.Lamp.ChangedHue)
	assert.Equal(t, DefaultLampUnknownHue, cfg.Notification.Lamp.UnknownHue)
	assert.Equal(t, "console", cfg.Log.LogFormat)
}

func TestLoadGlobalConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
targets:
  - url: https://example.com/status
    selector: "#status"
monitor:
  check_interval_seconds: 60
  debug: true
retry:
  max_retries: 2
  base_delay_ms: 250
fingerprint:
  ignore_minor_changes: true
notification:
  alert_webhook_url: https://hooks.example.com/alert
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadGlobalConfig(path)
	require.NoError(t, err)

	require.Len(t, cfg.Targets, 1)
	assert.Equal(t, "https://example.com/status", cfg.Targets[0].URL)
	assert.Equal(t, "#status", cfg.Targets[0].Selector)
	assert.Equal(t, 60*time.Second, cfg.Monitor.CheckInterval())
	assert.True(t, cfg.Monitor.Debug)
	assert.Equal(t, 2, cfg.Retry.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.BaseDelay())
	assert.True(t, cfg.Fingerprint.IgnoreMinorChanges)
	assert.Equal(t, "https://hooks.example.com/alert", cfg.Notification.AlertWebhookURL)

	// Omitted sections keep defaults.
	assert.Equal(t, AcquisitionModeHTTP, cfg.Acquisition.Mode)
	assert.Equal(t, DefaultStateDir, cfg.Storage.StateDir)
}

func TestLoadGlobalConfig_MissingTargets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("monitor:\n  debug: true\n"), 0o644))

	_, err := LoadGlobalConfig(path)
	assert.Error(t, err, "a config without targets must not validate")
}

func TestLoadGlobalConfig_InvalidWebhookURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
targets:
  - url: https://example.com
notification:
  alert_webhook_url: "not a url"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadGlobalConfig(path)
	assert.Error(t, err)
}

func TestFingerprintConfig_EffectiveVolatileAttributes(t *testing.T) {
	fc := NewDefaultFingerprintConfig()
	assert.Contains(t, fc.EffectiveVolatileAttributes(), "nonce")

	fc.VolatileAttributes = []string{"data-custom"}
	assert.Equal(t, []string{"data-custom"}, fc.EffectiveVolatileAttributes())
}
