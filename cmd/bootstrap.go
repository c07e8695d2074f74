package cmd

import (
	"fmt"

	"vessel-manager/core/config"
	"vessel-manager/core/database"
	"vessel-manager/core/logger"
	"vessel-manager/core/reconcile"
	"vessel-manager/core/storage"
	"vessel-manager/feature/integrity/checks"
	"vessel-manager/feature/vessel"
	"vessel-manager/feature/vessel/sources"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles what the commands share once configuration is loaded.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	client  storage.Client
	cache   *reconcile.CandidateCache
	store   *vessel.Store
	service *vessel.Service
}

// setup loads configuration, then the logger, the database and storage, in
// that order, and wires the vessel service over them.
func setup() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	engine := reconcile.NewEngine(
		reconcile.WithLogger(logg),
		reconcile.WithValidator(reconcile.RecordValidator{}),
	)
	store := vessel.NewStore(db, engine.Catalog())

	var cache *reconcile.CandidateCache
	if ttl := cfg.Enhance.CacheTTL(); ttl > 0 {
		cache = reconcile.NewCandidateCache(ttl)
	}
	adapters := sources.NewAdapters(client, cfg.Storage.Bucket, cfg.Enhance.CandidatePrefix,
		cfg.Enhance.EnabledSources(), cache, logg)

	return &runtime{
		cfg:     cfg,
		logger:  logg,
		db:      db,
		client:  client,
		cache:   cache,
		store:   store,
		service: vessel.NewService(store, engine, adapters, cfg.Enhance.WorkerCount(), logg),
	}, nil
}

// candidateFolders lists the bucket folders the enabled sources read from.
func (r *runtime) candidateFolders() []string {
	return checks.RequiredFolders(r.cfg.Enhance.CandidatePrefix, r.cfg.Enhance.EnabledSources())
}

// requireSchema refuses to write when the vessel table is missing columns.
func (r *runtime) requireSchema() error {
	missing, err := r.store.CheckSchema()
	if err != nil {
		return fmt.Errorf("failed to inspect vessel schema: %w", err)
	}
	if len(missing) > 0 {
		r.logger.Error("Vessel table is missing columns", zap.Strings("columns", missing))
		return fmt.Errorf("vessel table is missing %d columns; run `vessel-manager migrate` first", len(missing))
	}
	return nil
}
