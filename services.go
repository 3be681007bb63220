package main

import (
	"fmt"

	"setpriority/internal/catalog"
	"setpriority/internal/config"
	"setpriority/internal/logging"
	"setpriority/internal/manager"
	"setpriority/internal/models"
	"setpriority/internal/priority"
	"setpriority/internal/registry"
	"setpriority/internal/snapshot"
	"setpriority/internal/view"

	"go.uber.org/zap"
)

// services bundles everything the TUI and the CLI commands work with
type services struct {
	cfg     *config.Config
	log     *zap.Logger
	hive    registry.Hive
	store   *priority.Store
	catalog *catalog.Catalog
	archive *snapshot.Archive
	manager *manager.Manager
}

// options collected from the command line
type options struct {
	debug    bool
	hivePath string // forces the file backend
}

// loadConfig reads the config file at path and applies environment and flag
// overrides. The overrides live only in memory.
func loadConfig(path string, opts options) (*config.Config, error) {
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if opts.hivePath != "" {
		cfg.Backend = config.BackendFile
		cfg.HivePath = opts.hivePath
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, debug bool) *zap.Logger {
	logCfg := logging.DefaultConfig(cfg.LogFile)
	if cfg.LogLevel != "" {
		logCfg.Level = cfg.LogLevel
	}
	if debug {
		logCfg = logging.DebugConfig(cfg.LogFile)
	}
	return logging.NewOrNop(logCfg)
}

func openHive(cfg *config.Config) (registry.Hive, error) {
	if cfg.UsesFileHive() {
		return registry.OpenFile(cfg.HivePath)
	}
	return registry.OpenWindows(catalog.Root)
}

// openServices builds the services for the configured backend
func openServices(cfg *config.Config, debug bool) (*services, error) {
	log := newLogger(cfg, debug)

	hive, err := openHive(cfg)
	if err != nil {
		log.Error("open registry failed", zap.String("backend", cfg.Backend), zap.Error(err))
		return nil, fmt.Errorf("open %s registry: %w", cfg.Backend, err)
	}

	log.Info("starting",
		zap.String("version", version),
		zap.String("backend", cfg.Backend),
		zap.String("snapshots", cfg.SnapshotDir),
	)
	return newServices(cfg, hive, log), nil
}

func newServices(cfg *config.Config, hive registry.Hive, log *zap.Logger) *services {
	log = logging.OrNop(log)
	store := priority.NewStore(hive, log)
	cat := catalog.New(hive, cfg.SystemDirs())
	archive := snapshot.NewArchive(cfg.SnapshotDir, log)

	return &services{
		cfg:     cfg,
		log:     log,
		hive:    hive,
		store:   store,
		catalog: cat,
		archive: archive,
		manager: manager.New(store, cat, archive, log),
	}
}

// projection returns a fresh view over the store
func (s *services) projection() *view.Projection {
	return view.New(s.catalog, s.store)
}

// entries loads every application, unfiltered
func (s *services) entries() ([]models.Entry, view.Totals, error) {
	return view.Load(s.catalog, s.store)
}

func (s *services) close() {
	_ = s.log.Sync()
}
