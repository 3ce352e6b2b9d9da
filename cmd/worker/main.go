// Package main runs the daily reminder worker.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/uyenbatu/wedding-backend/config"
	"github.com/uyenbatu/wedding-backend/internal/app"
	"github.com/uyenbatu/wedding-backend/internal/logging"
	"github.com/uyenbatu/wedding-backend/internal/worker"
)

func main() {
	once := flag.Bool("once", false, "run the reminder job once and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.NewLogger(cfg.Server.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	core, err := app.NewCore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer core.Close()

	scheduler := worker.NewDailyScheduler(core.ReminderJob(ctx), cfg.Reminder.HourUTC, logger)
	if *once {
		scheduler.RunOnce(ctx)
		return
	}

	logger.Info("worker started", zap.Int("hour_utc", cfg.Reminder.HourUTC))
	scheduler.Run(ctx)
	logger.Info("worker stopped")
}
