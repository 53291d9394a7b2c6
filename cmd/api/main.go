package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sefazor/photoclub-backend/internal/config"
	"github.com/sefazor/photoclub-backend/internal/handler"
	"github.com/sefazor/photoclub-backend/internal/middleware"
	"github.com/sefazor/photoclub-backend/internal/repository"
	"github.com/sefazor/photoclub-backend/internal/routes"
	"github.com/sefazor/photoclub-backend/internal/service"
	"github.com/sefazor/photoclub-backend/internal/telemetry"
	"github.com/sefazor/photoclub-backend/pkg/database"
	"github.com/sefazor/photoclub-backend/pkg/logger"
	"github.com/sefazor/photoclub-backend/pkg/storage"
	"github.com/sefazor/photoclub-backend/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	var extra []fiber.Handler
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			zlog.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
			extra = append(extra, sentryfiber.New(sentryfiber.Options{
				Repanic:         true,
				WaitForDelivery: false,
			}))
			zlog.Info("sentry enabled")
		}
	}

	store, err := openStore(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to open store", zap.Error(err))
	}

	var objects storage.ObjectStorage
	if cfg.R2.Enabled() {
		r2, err := storage.NewCloudflareStorage(context.Background(), cfg.R2)
		if err != nil {
			zlog.Fatal("failed to initialize R2 storage", zap.Error(err))
		}
		objects = r2
	} else {
		zlog.Info("R2 not configured, uploads disabled")
	}

	metrics := telemetry.New()
	validator := utils.NewValidator()

	access := service.NewAccessService(store)
	userService := service.NewUserService(store, zlog)
	organizationService := service.NewOrganizationService(store, access, zlog)
	photoService := service.NewPhotoService(store, objects, cfg.UploadMaxBytes, zlog)
	galleryService := service.NewGalleryService(store, zlog)
	competitionService := service.NewCompetitionService(store, access, metrics, zlog)
	ratingService := service.NewRatingService(store, access, metrics, zlog)

	handlers := routes.Handlers{
		Health:       handler.NewHealthHandler(store),
		User:         handler.NewUserHandler(userService, validator, zlog),
		Photo:        handler.NewPhotoHandler(photoService, ratingService, validator, zlog),
		Gallery:      handler.NewGalleryHandler(galleryService, photoService, validator, zlog),
		Organization: handler.NewOrganizationHandler(organizationService, competitionService, validator, zlog),
		Competition:  handler.NewCompetitionHandler(competitionService, ratingService, validator, zlog),
	}

	app := routes.NewApp(cfg, zlog, metrics, extra...)
	authMW := middleware.AuthMiddleware(cfg.JWTSecret, userService, zlog.Named("auth"))
	routes.Setup(app, cfg, authMW, metrics, handlers)

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("store", store.Backend()))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}
	zlog.Info("server exited")
}

// openStore picks the in-memory store when no database URL is configured.
func openStore(cfg *config.Config, log *zap.Logger) (repository.Store, error) {
	if cfg.Database.URL == "" {
		log.Warn("DATABASE_URL not set, using in-memory store")
		return repository.NewMemoryStore(), nil
	}
	db, err := database.NewDatabase(cfg.Database, !cfg.IsProduction())
	if err != nil {
		return nil, err
	}
	store := repository.NewGormStore(db)
	if err := store.AutoMigrate(); err != nil {
		return nil, err
	}
	return store, nil
}
