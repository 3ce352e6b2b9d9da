// Package main runs the wedding site HTTP API with graceful shutdown.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/uyenbatu/wedding-backend/config"
	"github.com/uyenbatu/wedding-backend/internal/app"
	"github.com/uyenbatu/wedding-backend/internal/logging"
	"github.com/uyenbatu/wedding-backend/internal/photos"
	"github.com/uyenbatu/wedding-backend/internal/rsvps"
	"github.com/uyenbatu/wedding-backend/internal/server"
	"github.com/uyenbatu/wedding-backend/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.NewLogger(cfg.Server.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	core, err := app.NewCore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer core.Close()

	if err := core.Migrate(ctx); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	if err := cfg.AWS.Validate(); err != nil {
		logger.Fatal("storage config", zap.Error(err))
	}
	s3Client, err := storage.NewS3(ctx, storage.S3Config{
		Region:               cfg.AWS.Region,
		AccessKeyID:          cfg.AWS.AccessKeyID,
		SecretAccessKey:      cfg.AWS.SecretAccessKey,
		Endpoint:             cfg.AWS.Endpoint,
		Bucket:               cfg.AWS.PhotoBucket,
		PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
	}, logger)
	if err != nil {
		logger.Fatal("s3", zap.Error(err))
	}

	// RSVPs
	rsvpHandler := rsvps.NewHandler(core.RSVPs, core.Dispatcher, cfg.Server.SiteURL, logger)

	// Photos
	issuer := photos.NewIssuer(s3Client, photos.Policy{
		InviteCode:    cfg.Uploads.InviteCode,
		MaxFiles:      cfg.Uploads.MaxFiles,
		MaxFileSizeMB: cfg.Uploads.MaxFileSizeMB,
		AllowedTypes:  cfg.Uploads.AllowedTypes,
	}, cfg.AWS.UploadPrefix)
	photoHandler := photos.NewHandler(issuer, photos.NewRepository(core.Pool, cfg.Database.PhotoTable), logger)

	router, err := server.NewRouter(server.Dependencies{
		RSVPs:          rsvpHandler,
		Photos:         photoHandler,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Logger:         logger,
	})
	if err != nil {
		logger.Fatal("router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
