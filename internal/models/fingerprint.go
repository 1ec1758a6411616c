package models

import (
	"errors"
	"time"
)

// ErrRecordNotFound is returned when a record is not found in the store.
var ErrRecordNotFound = errors.New("record not found")

// SummaryMetadata is the coarse, human-comparable description of a
// fingerprinted snapshot. It is persisted alongside the hash so a later
// cycle can describe roughly what changed without keeping raw content.
// It never participates in hash computation.
type SummaryMetadata struct {
	ElementCount int    `json:"element_count"`
	TextLength   int    `json:"text_length"`
	TextPreview  string `json:"text_preview,omitempty"`
}

// FingerprintRecord is the persisted unit: exactly one record is current
// per ResourceIdentity, replaced atomically on every write. The hash is a
// deterministic function of the canonicalized snapshot only — never of the
// timestamp or of volatile attributes.
type FingerprintRecord struct {
	Identity  ResourceIdentity `json:"identity"`
	Hash      string           `json:"hash"`
	Timestamp time.Time        `json:"timestamp"`
	Summary   SummaryMetadata  `json:"summary"`
}

// FingerprintStore defines durable key-value persistence of one
// FingerprintRecord per ResourceIdentity.
type FingerprintStore interface {
	// Load retrieves the current record for the identity.
	// Returns ErrRecordNotFound when no record exists.
	Load(identity ResourceIdentity) (*FingerprintRecord, error)

	// Save durably replaces the record for the identity. Partial writes
	// must never be observable by a subsequent Load.
	Save(record FingerprintRecord) error

	// Clear removes the record for the identity. Absence is not an error.
	Clear(identity ResourceIdentity) error
}
