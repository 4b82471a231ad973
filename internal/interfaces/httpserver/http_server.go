package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xdd7520/QualityStar/internal/config"
	middleware "github.com/xdd7520/QualityStar/internal/interfaces/httpserver/middlewares"
	v1 "github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1"

	_ "github.com/xdd7520/QualityStar/docs/swagger"
)

const shutdownGrace = 15 * time.Second

type HttpServer struct {
	engine  *gin.Engine
	v1Route *v1.V1Route
	config  *config.Config
	logger  zerolog.Logger
}

func (s *HttpServer) bindSwagger() {
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func NewHttpServer(v1Route *v1.V1Route, cfg *config.Config, logger zerolog.Logger) *HttpServer {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	server := HttpServer{
		engine:  gin.New(),
		v1Route: v1Route,
		config:  cfg,
		logger:  logger,
	}
	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.LoggingMiddleware(logger))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	server.engine.GET("/healthz", v1.GetHealthz)
	server.engine.GET("/readyz", v1Route.GetReadyz)
	server.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.EnableSwagger {
		server.bindSwagger()
	}

	v1Route.RegisterRouter(server.engine.Group(cfg.APIPrefix))
	return &server
}

// Handler exposes the engine, mainly for tests.
func (s *HttpServer) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *HttpServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.HTTPPort),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Int("port", s.config.HTTPPort).Str("prefix", s.config.APIPrefix).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		s.logger.Info().Msg("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
