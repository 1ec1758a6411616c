package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/pagesentry/pagesentry/internal/acquisition"
	"github.com/pagesentry/pagesentry/internal/config"
	"github.com/pagesentry/pagesentry/internal/datastore"
	"github.com/pagesentry/pagesentry/internal/logger"
	"github.com/pagesentry/pagesentry/internal/models"
	"github.com/pagesentry/pagesentry/internal/monitor"
)

func main() {
	fmt.Println("PageSentry starting...")

	flags := ParseFlags()

	gCfg, err := loadConfiguration(flags)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load configuration: %v", err)
	}

	zLogger, err := logger.New(gCfg.Log)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not initialize logger: %v", err)
	}
	zLogger.Info().Int("targets", len(gCfg.Targets)).Msg("Configuration loaded")

	store, closeStore, err := buildStore(gCfg, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to initialize fingerprint store")
	}
	defer closeStore()

	// Headless acquisition shares one browser across all targets; HTTP
	// fetchers are cheap and built per service.
	opts := monitor.ServiceOptions{}
	var rodFetcher *acquisition.RodFetcher
	if gCfg.Acquisition.Mode == config.AcquisitionModeHeadless {
		rodFetcher = acquisition.NewRodFetcher(gCfg.Acquisition, zLogger)
		opts.Fetcher = rodFetcher
		defer func() {
			if err := rodFetcher.Close(); err != nil {
				zLogger.Warn().Err(err).Msg("Failed to close headless browser")
			}
		}()
	}

	services := make([]*monitor.Service, 0, len(gCfg.Targets))
	for _, target := range gCfg.Targets {
		services = append(services, monitor.NewService(gCfg, target, store, opts, zLogger))
	}

	if flags.Once {
		runOnce(services, zLogger)
		return
	}

	for _, svc := range services {
		svc.Start()
	}
	zLogger.Info().Dur("interval", gCfg.Monitor.CheckInterval()).Msg("All monitors started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	zLogger.Info().Str("signal", sig.String()).Msg("Received interrupt signal, initiating graceful shutdown...")

	for _, svc := range services {
		svc.Stop()
	}
	zLogger.Info().Msg("PageSentry finished.")
}

// loadConfiguration resolves the config file and applies the single-target
// command-line override. With -url and no config file the defaults alone
// are enough to run.
func loadConfiguration(flags AppFlags) (*config.GlobalConfig, error) {
	configPath := config.GetConfigPath(flags.GlobalConfigFile)

	if configPath == "" && flags.URL != "" {
		gCfg := config.NewDefaultGlobalConfig()
		gCfg.Targets = []config.TargetConfig{{URL: flags.URL, Selector: flags.Selector}}
		if err := config.ValidateConfig(gCfg); err != nil {
			return nil, err
		}
		return gCfg, nil
	}

	gCfg, err := config.LoadGlobalConfig(configPath)
	if err != nil {
		return nil, err
	}

	if flags.URL != "" {
		gCfg.Targets = []config.TargetConfig{{URL: flags.URL, Selector: flags.Selector}}
		if err := config.ValidateConfig(gCfg); err != nil {
			return nil, err
		}
	}
	return gCfg, nil
}

func buildStore(gCfg *config.GlobalConfig, zLogger zerolog.Logger) (models.FingerprintStore, func(), error) {
	switch gCfg.Storage.Backend {
	case config.StorageBackendSQLite:
		store, err := datastore.NewSQLiteStore(gCfg.Storage.SQLitePath, zLogger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				zLogger.Warn().Err(err).Msg("Failed to close sqlite store")
			}
		}, nil
	default:
		store, err := datastore.NewFileStore(gCfg.Storage.StateDir, zLogger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

// runOnce executes exactly one detection cycle per target, sequentially,
// and reports each outcome on stdout. Exit status is non-zero when any
// cycle ended in an error outcome.
func runOnce(services []*monitor.Service, zLogger zerolog.Logger) {
	zLogger.Info().Msg("Running in onetime mode...")

	failed := false
	for _, svc := range services {
		outcome := svc.RunOnce()
		fmt.Printf("%s: %s\n", svc.Identity().String(), outcome)
		if outcome == models.OutcomeError {
			failed = true
		}
	}

	zLogger.Info().Msg("PageSentry finished (onetime mode).")
	if failed {
		os.Exit(1)
	}
}
