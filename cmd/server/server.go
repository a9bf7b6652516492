package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"media-registry/internal/config"
	domain "media-registry/internal/domain/registry"
	"media-registry/internal/infrastructure/auth"
	"media-registry/internal/infrastructure/database"
	"media-registry/internal/infrastructure/logger"
	"media-registry/internal/infrastructure/observability"
	"media-registry/internal/infrastructure/rbac"
	repo "media-registry/internal/infrastructure/repository/registry"
	"media-registry/internal/infrastructure/tokenoracle"
	"media-registry/internal/interfaces/httpserver"
	"media-registry/internal/webhook"
)

// @title Media Registry API
// @version 1.0
// @description Append-only registry of media records with provenance links
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	store := repo.NewRepository(db, seedPolicy(cfg))

	roleStore := rbac.NewStore(db, log)
	if err := roleStore.Bootstrap(ctx, cfg.BootstrapAdmin); err != nil {
		log.Fatal().Err(err).Msg("bootstrap admin role")
	}

	var oracle domain.TokenOracle
	if cfg.TokenOracleURL != "" {
		oracle = tokenoracle.NewClient(cfg.TokenOracleURL, cfg.TokenOracleTimeout, log)
	} else {
		log.Warn().Msg("no token oracle configured, origin tokens are recorded as asserted")
	}

	validator := domain.NewValidator(store, roleStore, oracle, cfg.ChainID)
	notifier := webhook.NewHTTPService(cfg.WebhookURLs, log)
	service := domain.NewService(store, store, validator, roleStore, notifier, log)

	authValidator, err := auth.NewValidator(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	httpServer := httpserver.New(cfg, log, service, roleStore, authValidator)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func seedPolicy(cfg *config.Config) domain.Policy {
	return domain.Policy{
		SchemaVersion:           cfg.SeedSchemaVersion,
		MaxSubComponents:        cfg.SeedMaxSubComponents,
		EnforceMaxSubComponents: cfg.SeedEnforceMaxSubComponents,
		RequireAuthorizedWriter: cfg.SeedRequireAuthorizedWriter,
		Paused:                  false,
	}
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
