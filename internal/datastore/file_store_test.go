package datastore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pagesentry/pagesentry/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(url string) models.FingerprintRecord {
	return models.FingerprintRecord{
		Identity:  models.ResourceIdentity{URL: url, Selector: "#content"},
		Hash:      "abc123",
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Summary:   models.SummaryMetadata{ElementCount: 3, TextLength: 42, TextPreview: "hello"},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	record := testRecord("https://example.com")

	_, err = store.Load(record.Identity)
	assert.ErrorIs(t, err, models.ErrRecordNotFound)

	require.NoError(t, store.Save(record))

	loaded, err := store.Load(record.Identity)
	require.NoError(t, err)
	assert.Equal(t, record.Hash, loaded.Hash)
	assert.Equal(t, record.Identity, loaded.Identity)
	assert.Equal(t, record.Summary, loaded.Summary)
}

func TestFileStore_SaveReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, zerolog.Nop())
	require.NoError(t, err)

	record := testRecord("https://example.com")
	require.NoError(t, store.Save(record))

	record.Hash = "def456"
	require.NoError(t, store.Save(record))

	loaded, err := store.Load(record.Identity)
	require.NoError(t, err)
	assert.Equal(t, "def456", loaded.Hash, "save must fully replace the prior record")

	// No leftover temp files.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_CorruptedFileFailsOpen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, zerolog.Nop())
	require.NoError(t, err)

	identity := models.ResourceIdentity{URL: "https://example.com", Selector: "#x"}
	path := filepath.Join(dir, identity.Key()+".json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o640))

	_, err = store.Load(identity)
	assert.ErrorIs(t, err, models.ErrRecordNotFound,
		"a corrupted state file degrades to re-baselining, never fails the run")
}

func TestFileStore_Clear(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	record := testRecord("https://example.com")
	require.NoError(t, store.Save(record))
	require.NoError(t, store.Clear(record.Identity))

	_, err = store.Load(record.Identity)
	assert.ErrorIs(t, err, models.ErrRecordNotFound)

	// Clearing an absent record is a no-op.
	assert.NoError(t, store.Clear(record.Identity))
}

func TestFileStore_DistinctIdentitiesDoNotCollide(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	a := testRecord("https://example.com/a")
	b := testRecord("https://example.com/b")
	b.Hash = "zzz999"

	require.NoError(t, store.Save(a))
	require.NoError(t, store.Save(b))

	loadedA, err := store.Load(a.Identity)
	require.NoError(t, err)
	loadedB, err := store.Load(b.Identity)
	require.NoError(t, err)

	assert.Equal(t, "abc123", loadedA.Hash)
	assert.Equal(t, "zzz999", loadedB.Hash)
}
