package datastore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pagesentry/pagesentry/internal/common/errorwrapper"
	"github.com/pagesentry/pagesentry/internal/models"
	"github.com/rs/zerolog"
)

// FileStore persists one JSON document per ResourceIdentity under a state
// directory. File names are derived from the identity's full SHA-256 key
// so re-runs against the same target reuse state and distinct targets
// never collide.
type FileStore struct {
	baseDir string
	logger  zerolog.Logger
}

// NewFileStore creates the state directory if needed and returns a store.
func NewFileStore(baseDir string, logger zerolog.Logger) (*FileStore, error) {
	if baseDir == "" {
		return nil, errorwrapper.NewError("state directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, errorwrapper.WrapError(err, "creating state directory")
	}
	return &FileStore{
		baseDir: baseDir,
		logger:  logger.With().Str("component", "FileStore").Logger(),
	}, nil
}

func (fs *FileStore) recordPath(identity models.ResourceIdentity) string {
	return filepath.Join(fs.baseDir, identity.Key()+".json")
}

// Load retrieves the current record. A missing file is ErrRecordNotFound;
// a corrupted file is logged and also reported as not found so a bad state
// file degrades to re-baselining instead of failing the run.
func (fs *FileStore) Load(identity models.ResourceIdentity) (*models.FingerprintRecord, error) {
	path := fs.recordPath(identity)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, models.ErrRecordNotFound
		}
		fs.logger.Warn().Err(err).Str("path", path).Msg("Failed to read state file, treating as absent")
		return nil, models.ErrRecordNotFound
	}

	var record models.FingerprintRecord
	if err := json.Unmarshal(data, &record); err != nil {
		fs.logger.Warn().Err(err).Str("path", path).Msg("Corrupted state file, treating as absent")
		return nil, models.ErrRecordNotFound
	}

	return &record, nil
}

// Save writes the record to a temporary file in the same directory, syncs
// it, and renames it over the final path. A process killed mid-write can
// never leave a torn record observable by Load.
func (fs *FileStore) Save(record models.FingerprintRecord) error {
	path := fs.recordPath(record.Identity)

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return errorwrapper.WrapError(err, "encoding fingerprint record")
	}

	tmp, err := os.CreateTemp(fs.baseDir, ".record-*.tmp")
	if err != nil {
		return errorwrapper.WrapError(err, "creating temporary state file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errorwrapper.WrapError(err, "writing temporary state file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errorwrapper.WrapError(err, "syncing temporary state file")
	}
	if err := tmp.Close(); err != nil {
		return errorwrapper.WrapError(err, "closing temporary state file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errorwrapper.WrapError(err, "replacing state file")
	}

	fs.logger.Debug().Str("path", path).Str("hash", record.Hash).Msg("Fingerprint record persisted")
	return nil
}

// Clear removes the record. Absence is not an error.
func (fs *FileStore) Clear(identity models.ResourceIdentity) error {
	err := os.Remove(fs.recordPath(identity))
	if err != nil && !os.IsNotExist(err) {
		return errorwrapper.WrapError(err, "removing state file")
	}
	return nil
}
