package datastore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/pagesentry/pagesentry/internal/common/errorwrapper"
	"github.com/pagesentry/pagesentry/internal/models"
	"github.com/rs/zerolog"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS fingerprints (
	key        TEXT PRIMARY KEY,
	url        TEXT NOT NULL,
	selector   TEXT NOT NULL,
	hash       TEXT NOT NULL,
	checked_at TEXT NOT NULL,
	summary    TEXT NOT NULL
);`

// SQLiteStore keeps one fingerprint row per ResourceIdentity in a single
// database file. Row replacement happens inside one UPSERT statement, so
// saves are atomic by construction.
type SQLiteStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewSQLiteStore opens (creating if needed) the database and its schema.
func NewSQLiteStore(path string, logger zerolog.Logger) (*SQLiteStore, error) {
	if path == "" {
		return nil, errorwrapper.NewError("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, errorwrapper.WrapError(err, "creating sqlite directory")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "opening sqlite database")
	}
	// The monitoring loop is single-writer; one connection avoids
	// SQLITE_BUSY without a busy-timeout dance.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, errorwrapper.WrapError(err, "creating sqlite schema")
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With().Str("component", "SQLiteStore").Logger(),
	}, nil
}

// Load retrieves the current record for the identity. Undecodable summary
// metadata is logged and dropped rather than failing the load.
func (ss *SQLiteStore) Load(identity models.ResourceIdentity) (*models.FingerprintRecord, error) {
	row := ss.db.QueryRow(
		`SELECT url, selector, hash, checked_at, summary FROM fingerprints WHERE key = ?`,
		identity.Key(),
	)

	var record models.FingerprintRecord
	var checkedAt, summaryJSON string
	err := row.Scan(&record.Identity.URL, &record.Identity.Selector, &record.Hash, &checkedAt, &summaryJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrRecordNotFound
	}
	if err != nil {
		ss.logger.Warn().Err(err).Str("identity", identity.String()).Msg("Failed to read fingerprint row, treating as absent")
		return nil, models.ErrRecordNotFound
	}

	if ts, err := time.Parse(time.RFC3339Nano, checkedAt); err == nil {
		record.Timestamp = ts
	}
	if err := json.Unmarshal([]byte(summaryJSON), &record.Summary); err != nil {
		ss.logger.Warn().Err(err).Str("identity", identity.String()).Msg("Undecodable summary metadata, dropping")
		record.Summary = models.SummaryMetadata{}
	}

	return &record, nil
}

// Save upserts the record, fully replacing any prior row for the identity.
func (ss *SQLiteStore) Save(record models.FingerprintRecord) error {
	summaryJSON, err := json.Marshal(record.Summary)
	if err != nil {
		return errorwrapper.WrapError(err, "encoding summary metadata")
	}

	_, err = ss.db.Exec(
		`INSERT INTO fingerprints (key, url, selector, hash, checked_at, summary)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   hash = excluded.hash,
		   checked_at = excluded.checked_at,
		   summary = excluded.summary`,
		record.Identity.Key(),
		record.Identity.URL,
		record.Identity.Selector,
		record.Hash,
		record.Timestamp.Format(time.RFC3339Nano),
		string(summaryJSON),
	)
	if err != nil {
		return errorwrapper.WrapError(err, "upserting fingerprint row")
	}

	ss.logger.Debug().Str("identity", record.Identity.String()).Str("hash", record.Hash).Msg("Fingerprint record persisted")
	return nil
}

// Clear removes the row for the identity. Absence is not an error.
func (ss *SQLiteStore) Clear(identity models.ResourceIdentity) error {
	if _, err := ss.db.Exec(`DELETE FROM fingerprints WHERE key = ?`, identity.Key()); err != nil {
		return errorwrapper.WrapError(err, "deleting fingerprint row")
	}
	return nil
}

// Close releases the underlying database handle.
func (ss *SQLiteStore) Close() error {
	return ss.db.Close()
}
