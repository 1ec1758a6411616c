package datastore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pagesentry/pagesentry/internal/models"
	"github.com/rs/zerolog"
)

// SnapshotArtifactWriter dumps the last successful raw snapshot of each
// identity as a debug aid. Writes are best-effort: a failure is logged and
// never fails the detection cycle, and the artifact carries no atomicity
// guarantee — it is not state.
type SnapshotArtifactWriter struct {
	baseDir string
	logger  zerolog.Logger
}

// NewSnapshotArtifactWriter creates a writer rooted at the state directory.
func NewSnapshotArtifactWriter(baseDir string, logger zerolog.Logger) *SnapshotArtifactWriter {
	return &SnapshotArtifactWriter{
		baseDir: baseDir,
		logger:  logger.With().Str("component", "SnapshotArtifactWriter").Logger(),
	}
}

// Write replaces the debug artifact for the snapshot's identity.
func (w *SnapshotArtifactWriter) Write(snapshot *models.Snapshot) {
	if snapshot == nil {
		return
	}

	path := filepath.Join(w.baseDir, snapshot.Identity.Key()+".snapshot.json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		w.logger.Warn().Err(err).Msg("Failed to encode debug snapshot")
		return
	}
	if err := os.MkdirAll(w.baseDir, 0o750); err != nil {
		w.logger.Warn().Err(err).Str("dir", w.baseDir).Msg("Failed to create snapshot artifact directory")
		return
	}
	if err := os.WriteFile(path, data, 0o640); err != nil {
		w.logger.Warn().Err(err).Str("path", path).Msg("Failed to write debug snapshot")
	}
}
