package infrastructure

import (
	"context"
	"time"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xdd7520/QualityStar/internal/config"
	"github.com/xdd7520/QualityStar/internal/domain/coverage"
	"github.com/xdd7520/QualityStar/internal/domain/projectmapping"
	"github.com/xdd7520/QualityStar/internal/domain/user"
	"github.com/xdd7520/QualityStar/internal/infrastructure/auth"
	"github.com/xdd7520/QualityStar/internal/infrastructure/cache"
	"github.com/xdd7520/QualityStar/internal/infrastructure/crontab"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/transaction"
	"github.com/xdd7520/QualityStar/internal/infrastructure/logger"
	"github.com/xdd7520/QualityStar/internal/infrastructure/metricsource"
	"github.com/xdd7520/QualityStar/internal/infrastructure/runlock"
	"github.com/xdd7520/QualityStar/internal/utils/httpclients"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideLogger installs the configured process logger
func ProvideLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.LogFormat)
}

// ProvideDatabase provides a database connection and runs migrations when AUTO_MIGRATE is set
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, func(), error) {
	level := gormlogger.Warn
	if cfg.LogLevel == "debug" {
		level = gormlogger.Info
	}
	db, err := database.Connect(database.Config{
		Driver:      cfg.DatabaseDriver,
		DatabaseURL: cfg.DatabaseURL,
		ReadDSN:     cfg.DBReadDSN,
		MaxIdle:     cfg.DBMaxIdle,
		MaxOpen:     cfg.DBMaxOpen,
		MaxLifetime: cfg.DBMaxLifetime,
		LogLevel:    level,
	})
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	if cfg.AutoMigrate {
		log.Info().Str("driver", cfg.DatabaseDriver).Msg("Running database migrations...")
		if cfg.DatabaseDriver == database.DriverSQLite {
			err = database.Migration(db)
		} else {
			err = database.AutoMigrate(db)
		}
		if err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			cleanup()
			return nil, nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}
	return db, cleanup, nil
}

// ProvideTransactionDatabase provides a transaction database wrapper
func ProvideTransactionDatabase(db *gorm.DB) *transaction.Database {
	return transaction.NewDatabase(db)
}

func ProvideProjectMappingCache(cfg *config.Config) (projectmapping.Cache, error) {
	return cache.NewProjectMappingCache(cfg.ProjectCacheSize)
}

func ProvideLocker(cfg *config.Config) (coverage.Locker, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return runlock.NewLocker(ctx, cfg.RedisURL, cfg.RunLockTTL, cfg.RunLockWait)
}

func ProvideMetricSource(cfg *config.Config) coverage.MetricSource {
	return metricsource.NewPrometheusClient(httpclients.NewClient("prometheus"), cfg.PrometheusURL, cfg.PrometheusTimeout)
}

func ProvideTokenIssuer(cfg *config.Config) (*auth.TokenIssuer, error) {
	return auth.NewTokenIssuer(cfg.SecretKey, cfg.AccessTokenTTL)
}

func ProvideScheduler(cfg *config.Config) *crontab.Scheduler {
	return crontab.NewScheduler(crontab.Settings{
		Location:   cfg.Location(),
		JobTimeout: cfg.CronJobTimeout,
	})
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,
	ProvideLogger,

	// Database
	ProvideDatabase,
	ProvideTransactionDatabase,
	wire.Bind(new(coverage.UnitOfWork), new(*transaction.Database)),
	wire.Bind(new(user.UnitOfWork), new(*transaction.Database)),

	// Repositories
	repository.RepositoryProvider,

	// Coverage collaborators
	ProvideProjectMappingCache,
	ProvideLocker,
	ProvideMetricSource,

	// Auth
	ProvideTokenIssuer,

	// Scheduler
	ProvideScheduler,
)
