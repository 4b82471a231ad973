package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/xdd7520/QualityStar/internal/config"
	"github.com/xdd7520/QualityStar/internal/infrastructure/crontab"
	"github.com/xdd7520/QualityStar/internal/infrastructure/logger"
	"github.com/xdd7520/QualityStar/internal/infrastructure/observability"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver"
)

type Application struct {
	httpServer  *httpserver.HttpServer
	scheduler   *crontab.Scheduler
	initializer *DataInitializer
	cfg         *config.Config
	logger      zerolog.Logger
}

// @title QualityStar API
// @version 1.0
// @description Interface coverage tracking: gathers served endpoints from Prometheus, ingests automation reports and reconciles coverage.
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func (application *Application) Start(ctx context.Context) error {
	if err := application.initializer.Install(ctx); err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return application.scheduler.Run(ctx)
	})
	eg.Go(func() error {
		return application.httpServer.Run(ctx)
	})
	if application.cfg.CollectOnStart {
		eg.Go(func() error {
			application.initializer.CollectOnce(ctx)
			return nil
		})
	}
	return eg.Wait()
}

func main() {
	log := logger.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, cleanup, err := CreateApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("create application")
	}
	defer cleanup()

	log = application.logger
	otelShutdown, err := observability.Setup(ctx, application.cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("initialize observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("shutdown telemetry")
			}
		}()
	}

	if err := application.Start(ctx); err != nil {
		log.Error().Err(err).Msg("application stopped")
		return
	}
	log.Info().Msg("application stopped")
}
