//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"media-registry/internal/config"
	domain "media-registry/internal/domain/registry"
	"media-registry/internal/infrastructure/auth"
	"media-registry/internal/infrastructure/database"
	"media-registry/internal/infrastructure/logger"
	"media-registry/internal/infrastructure/rbac"
	repo "media-registry/internal/infrastructure/repository/registry"
	"media-registry/internal/infrastructure/tokenoracle"
	"media-registry/internal/interfaces/httpserver"
	"media-registry/internal/webhook"
)

var registrySet = wire.NewSet(
	provideRepository,
	wire.Bind(new(domain.Store), new(*repo.Repository)),
	wire.Bind(new(domain.PolicyStore), new(*repo.Repository)),
	provideRoleStore,
	wire.Bind(new(domain.RoleOracle), new(*rbac.Store)),
	provideTokenOracle,
	provideNotifier,
	provideValidator,
	domain.NewService,
	wire.Bind(new(domain.Service), new(*domain.DefaultService)),
)

// BuildApplication assembles the registry service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		auth.NewValidator,
		newDatabaseConfig,
		newGormDB,
		registrySet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func provideRepository(db *gorm.DB, cfg *config.Config) *repo.Repository {
	return repo.NewRepository(db, seedPolicy(cfg))
}

func provideRoleStore(ctx context.Context, db *gorm.DB, cfg *config.Config, log zerolog.Logger) (*rbac.Store, error) {
	store := rbac.NewStore(db, log)
	if err := store.Bootstrap(ctx, cfg.BootstrapAdmin); err != nil {
		return nil, err
	}
	return store, nil
}

// provideTokenOracle returns nil when no oracle endpoint is configured, in
// which case origin tokens are recorded as asserted.
func provideTokenOracle(cfg *config.Config, log zerolog.Logger) domain.TokenOracle {
	if cfg.TokenOracleURL == "" {
		return nil
	}
	return tokenoracle.NewClient(cfg.TokenOracleURL, cfg.TokenOracleTimeout, log)
}

func provideNotifier(cfg *config.Config, log zerolog.Logger) domain.Notifier {
	return webhook.NewHTTPService(cfg.WebhookURLs, log)
}

func provideValidator(store domain.Store, roles domain.RoleOracle, tokens domain.TokenOracle, cfg *config.Config) *domain.Validator {
	return domain.NewValidator(store, roles, tokens, cfg.ChainID)
}
