package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/pagesentry/pagesentry/internal/acquisition"
	"github.com/pagesentry/pagesentry/internal/datastore"
	"github.com/pagesentry/pagesentry/internal/differ"
	"github.com/pagesentry/pagesentry/internal/fingerprint"
	"github.com/pagesentry/pagesentry/internal/models"
	"github.com/pagesentry/pagesentry/internal/notifier"
	"github.com/rs/zerolog"
)

// Detector runs one detection cycle: acquire a snapshot, fingerprint it,
// compare against the persisted record, and classify the outcome. It
// never lets an error or panic escape to the scheduler; every cycle ends
// in exactly one CycleOutcome.
type Detector struct {
	identity   models.ResourceIdentity
	source     acquisition.Fetcher
	extractor  *fingerprint.Extractor
	store      models.FingerprintStore
	dispatcher *notifier.Dispatcher
	differ     *differ.SummaryDiffer
	artifacts  *datastore.SnapshotArtifactWriter
	logger     zerolog.Logger
}

// NewDetector creates a Detector for one identity. artifacts may be nil
// when debug snapshots are disabled.
func NewDetector(
	identity models.ResourceIdentity,
	source acquisition.Fetcher,
	extractor *fingerprint.Extractor,
	store models.FingerprintStore,
	dispatcher *notifier.Dispatcher,
	summaryDiffer *differ.SummaryDiffer,
	artifacts *datastore.SnapshotArtifactWriter,
	logger zerolog.Logger,
) *Detector {
	return &Detector{
		identity:   identity,
		source:     source,
		extractor:  extractor,
		store:      store,
		dispatcher: dispatcher,
		differ:     summaryDiffer,
		artifacts:  artifacts,
		logger:     logger.With().Str("component", "ChangeDetector").Str("identity", identity.String()).Logger(),
	}
}

// RunCycle executes one full detection cycle and returns its
// classification. A panic anywhere inside the cycle is contained and
// classified as an error outcome.
func (d *Detector) RunCycle(ctx context.Context) (outcome models.CycleOutcome) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Interface("panic", r).Msg("Detection cycle panicked")
			d.dispatchError(ctx)
			outcome = models.OutcomeError
		}
	}()

	snapshot, err := d.source.Fetch(ctx, d.identity)
	if err != nil {
		d.logger.Error().Err(err).Msg("Snapshot acquisition failed")
		d.dispatchError(ctx)
		return models.OutcomeError
	}

	if d.artifacts != nil {
		d.artifacts.Write(snapshot)
	}

	result, err := d.extractor.Fingerprint(snapshot)
	if err != nil {
		d.logger.Error().Err(err).Msg("Fingerprinting failed")
		d.dispatchError(ctx)
		return models.OutcomeError
	}

	if result.Empty {
		d.logger.Warn().Msg("Selector matched no content")
		d.dispatcher.Dispatch(ctx, models.AlertEvent{
			Reason:    models.AlertReasonNotFound,
			Timestamp: time.Now(),
			Identity:  d.identity,
		})
		// Persisted state stays untouched; the target may reappear.
		return models.OutcomeNotFound
	}

	record := models.FingerprintRecord{
		Identity:  d.identity,
		Hash:      result.Hash,
		Timestamp: snapshot.FetchedAt,
		Summary:   result.Summary,
	}

	previous, err := d.store.Load(d.identity)
	if err != nil {
		if !errors.Is(err, models.ErrRecordNotFound) {
			// Stores fail open by contract; this is belt and braces.
			d.logger.Warn().Err(err).Msg("State load failed, re-baselining")
		}
		d.persist(record)
		d.logger.Info().Str("hash", record.Hash).Msg("Baseline established, no alert")
		return models.OutcomeInitialState
	}

	if previous.Hash == record.Hash {
		d.logger.Debug().Str("hash", record.Hash).Msg("No change detected")
		return models.OutcomeNoChange
	}

	deltas := d.differ.Describe(previous.Summary, record.Summary)
	d.logger.Info().
		Str("previous_hash", previous.Hash).
		Str("current_hash", record.Hash).
		Strs("deltas", deltas).
		Msg("Change detected")

	d.persist(record)
	d.dispatcher.Dispatch(ctx, models.AlertEvent{
		Reason:       models.AlertReasonChanged,
		Timestamp:    time.Now(),
		Identity:     d.identity,
		PreviousHash: previous.Hash,
		CurrentHash:  record.Hash,
		Deltas:       deltas,
	})

	return models.OutcomeChanged
}

/// persist saves the record. A write failure is logged, not fatal: the
// in-memory comparison for this cycle already completed, the next cycle
// simply re-detects.
func (d *Detector) persist(record models.FingerprintRecord) {
	if err := d.store.Save(record); err != nil {
		d.logger.Error().Err(err).Msg("Failed to persist fingerprint record")
	}
}

func (d *Detector) dispatchError(ctx context.Context) {
	d.dispatcher.Dispatch(ctx, models.AlertEvent{
		Reason:    models.AlertReasonMonitorError,
		Timestamp: time.Now(),
		Identity:  d.identity,
	})
}
