package config

// Storage backends.
const (
	StorageBackendFile   = "file"
	StorageBackendSQLite = "sqlite"
)

// StorageConfig defines configuration for fingerprint persistence
type StorageConfig struct {
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty" validate:"omitempty,oneof=file sqlite"`
	// StateDir holds one JSON document per identity for the file backend,
	// and debug snapshot artifacts for both backends
	StateDir string `json:"state_dir,omitempty" yaml:"state_dir,omitempty"`
	// SQLitePath is the database file for the sqlite backend
	SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Backend:    DefaultStorageBackend,
		StateDir:   DefaultStateDir,
		SQLitePath: DefaultSQLitePath,
	}
}
