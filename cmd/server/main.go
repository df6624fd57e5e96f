package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sheetdash/backend/internal/api"
	"github.com/sheetdash/backend/internal/auth"
	"github.com/sheetdash/backend/internal/blob"
	"github.com/sheetdash/backend/internal/config"
	"github.com/sheetdash/backend/internal/files"
	"github.com/sheetdash/backend/internal/logger"
	"github.com/sheetdash/backend/internal/metadata"
)

// Version info (set during build)
var Version = "dev"

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Get()

	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatal().Err(err).Msg("failed to create directories")
	}

	meta, err := metadata.OpenDuckStore(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open metadata store")
	}
	defer meta.Close()

	var blobs blob.Store
	switch cfg.Storage.Backend {
	case "s3":
		blobs, err = blob.NewS3Store(cfg.Storage.S3)
	default:
		blobs, err = blob.NewLocalStore(cfg.Storage.UploadDir)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize blob storage")
	}

	deps := &api.Dependencies{
		Files:   files.NewService(meta, blobs),
		Auth:    auth.NewService(cfg.Auth),
		Version: Version,
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/api/health"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	e.Use(middleware.Gzip())

	if cfg.Server.EnableCORS {
		origins := cfg.Server.AllowOrigins
		if len(origins) == 0 {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}

	api.RegisterRoutes(e, api.NewHandlers(deps))

	s := &http.Server{
		Addr:         cfg.ServerAddr(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.ServerAddr()).Str("version", Version).
			Str("storage", cfg.Storage.Backend).Msg("server starting")
		if err := e.StartServer(s); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
