package monitor

import (
	"context"
	"time"

	"github.com/pagesentry/pagesentry/internal/acquisition"
	"github.com/pagesentry/pagesentry/internal/config"
	"github.com/pagesentry/pagesentry/internal/datastore"
	"github.com/pagesentry/pagesentry/internal/differ"
	"github.com/pagesentry/pagesentry/internal/fingerprint"
	"github.com/pagesentry/pagesentry/internal/models"
	"github.com/pagesentry/pagesentry/internal/notifier"
	"github.com/rs/zerolog"
)

// Service is one independent monitor instance: a detector for a single
// ResourceIdentity driven by its own scheduler. Multiple services run in
// the same process without interference; nothing is shared but the store
// the caller chose to share.
type Service struct {
	identity  models.ResourceIdentity
	detector  *Detector
	scheduler *Scheduler
	runState  *models.MonitorRunState
	logger    zerolog.Logger
}

// ServiceOptions carries the collaborators a Service is assembled from.
// Fetcher and Channels override the config-derived defaults when set,
// which is how tests and programmatic callers inject their own.
type ServiceOptions struct {
	Fetcher  acquisition.Fetcher
	Channels []models.AlertChannel
}

// NewService wires a monitor instance for the target from configuration.
func NewService(
	cfg *config.GlobalConfig,
	target config.TargetConfig,
	store models.FingerprintStore,
	opts ServiceOptions,
	logger zerolog.Logger,
) *Service {
	identity := models.ResourceIdentity{URL: target.URL, Selector: target.Selector}
	instanceLogger := logger.With().Str("component", "MonitorService").Str("target", identity.String()).Logger()

	fetcher := opts.Fetcher
	if fetcher == nil {
		switch cfg.Acquisition.Mode {
		case config.AcquisitionModeHeadless:
			fetcher = acquisition.NewRodFetcher(cfg.Acquisition, instanceLogger)
		default:
			fetcher = acquisition.NewHTTPFetcher(cfg.Acquisition, instanceLogger)
		}
	}
	retrier := acquisition.NewRetrier(fetcher, cfg.Retry, cfg.Acquisition.Timeout(), instanceLogger)

	channels := opts.Channels
	if channels == nil {
		channels = notifier.BuildChannels(cfg.Notification, instanceLogger)
	}
	dispatcher := notifier.NewDispatcher(channels, instanceLogger)

	var artifacts *datastore.SnapshotArtifactWriter
	if cfg.Monitor.Debug {
		artifacts = datastore.NewSnapshotArtifactWriter(cfg.Storage.StateDir, instanceLogger)
	}

	detector := NewDetector(
		identity,
		retrier,
		fingerprint.NewExtractor(cfg.Fingerprint, instanceLogger),
		store,
		dispatcher,
		differ.NewSummaryDiffer(),
		artifacts,
		instanceLogger,
	)

	s := &Service{
		identity: identity,
		detector: detector,
		runState: models.NewMonitorRunState(),
		logger:   instanceLogger,
	}
	s.scheduler = NewScheduler(cfg.Monitor.CheckInterval(), s.runCycle, instanceLogger)
	return s
}

// Start begins monitoring: one immediate check, then the configured
// interval.
func (s *Service) Start() {
	s.logger.Info().Msg("Starting monitor")
	s.runState.SetPhase(models.PhaseIdle)
	s.scheduler.Start()
}

// Stop shuts the monitor down, waiting for any in-flight cycle.
func (s *Service) Stop() {
	s.scheduler.Stop()
	s.runState.SetPhase(models.PhaseStopped)
	s.logger.Info().Msg("Monitor stopped")
}

// RunOnce executes a single detection cycle synchronously, outside the
// scheduler. Used by the onetime mode.
func (s *Service) RunOnce() models.CycleOutcome {
	startedAt := time.Now()
	s.runState.SetPhase(models.PhaseChecking)
	outcome := s.detector.RunCycle(context.Background())
	s.runState.RecordRun(startedAt, outcome)
	s.runState.SetPhase(models.PhaseStopped)
	return outcome
}

// Identity returns the monitored resource identity.
func (s *Service) Identity() models.ResourceIdentity {
	return s.identity
}

// RunState exposes the instance's run accounting.
func (s *Service) RunState() *models.MonitorRunState {
	return s.runState
}

// runCycle is the scheduler's check function: it brackets one detector
// cycle with phase and run accounting.
func (s *Service) runCycle(ctx context.Context) {
	startedAt := time.Now()
	s.runState.SetPhase(models.PhaseChecking)

	outcome := s.detector.RunCycle(ctx)

	s.runState.RecordRun(startedAt, outcome)
	s.runState.SetPhase(models.PhaseIdle)

	s.logger.Info().
		Str("outcome", string(outcome)).
		Dur("duration", time.Since(startedAt)).
		Int("consecutive_failures", s.runState.ConsecutiveFailureCount()).
		Msg("Detection cycle finished")
}
