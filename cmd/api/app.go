package main

import (
	"context"
	"fmt"
	"path/filepath"

	"hotelrp/cmd/internal/analytics"
	"hotelrp/cmd/internal/classifier"
	"hotelrp/cmd/internal/config"
	"hotelrp/cmd/internal/domain/jsonstore"
	"hotelrp/cmd/internal/domain/reference"
	"hotelrp/cmd/internal/domain/sqlite"
	"hotelrp/cmd/internal/domain/sqlite/repository"
	"hotelrp/cmd/internal/infrastructure/aws/storage"
	"hotelrp/cmd/internal/service"
	"hotelrp/cmd/internal/utils/uid"
	"hotelrp/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

// app holds the dependencies shared by every command.
type app struct {
	cfg        *config.Config
	db         *gorm.DB
	validate   *validator.Validate
	companies  service.CompanyStore
	registry   *repository.DefaultRegistryRepository
	reference  *reference.Data
	classifier *classifier.Classifier
	engine     *analytics.Engine
	exports    storage.ObjectStore
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log.SetLevel(cfg.Level())

	if err := uid.Init(cfg.NodeID); err != nil {
		return nil, fmt.Errorf("init id generator: %w", err)
	}

	validate := validator.New()
	validators.Register(validate)

	// Init SQLite, it always backs the registry cache
	db, err := sqlite.Init(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("init sqlite: %w", err)
	}

	var companies service.CompanyStore
	switch cfg.StoreDriver {
	case config.DriverJSON:
		companies = jsonstore.New(filepath.Join(cfg.DataDir, "empresas.json"))
	default:
		companies = repository.NewCompanyRepository(db)
	}

	ref, err := loadReference(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Init S3 client for published exports
	var exports storage.ObjectStore
	if cfg.ExportBucket != "" {
		exports, err = storage.NewStorageClient(ctx, cfg.AWSRegion, cfg.ExportBucket)
		if err != nil {
			return nil, fmt.Errorf("init export storage: %w", err)
		}
	}

	return &app{
		cfg:        cfg,
		db:         db,
		validate:   validate,
		companies:  companies,
		registry:   repository.NewRegistryRepository(db),
		reference:  ref,
		classifier: classifier.New(ref.Activities),
		engine:     analytics.NewEngine(),
		exports:    exports,
	}, nil
}

// loadReference prefers the bucket, then DATA_DIR, then the embedded copy,
// file by file.
func loadReference(ctx context.Context, cfg *config.Config) (*reference.Data, error) {
	sources := make([]reference.Source, 0, 3)
	if cfg.Reference.Bucket != "" {
		bucket, err := storage.NewStorageClient(ctx, cfg.AWSRegion, cfg.Reference.Bucket)
		if err != nil {
			return nil, fmt.Errorf("init reference storage: %w", err)
		}
		sources = append(sources, reference.Bucket(bucket, cfg.Reference.Prefix))
	}
	sources = append(sources, reference.Dir(cfg.DataDir), reference.Embedded())

	ref, err := reference.Load(ctx, reference.Fallback(sources...))
	if err != nil {
		return nil, fmt.Errorf("load reference data: %w", err)
	}
	return ref, nil
}

func (a *app) close() {
	sqlDB, err := a.db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warnf("failed to close database: %v", err)
	}
}
