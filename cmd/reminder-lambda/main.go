// Package main runs the reminder job as a scheduled AWS Lambda
// (EventBridge rule "cron(0 15 * * ? *)").
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/uyenbatu/wedding-backend/config"
	"github.com/uyenbatu/wedding-backend/internal/app"
	"github.com/uyenbatu/wedding-backend/internal/logging"
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

	handler := Handler{Job: core.ReminderJob(ctx), Logger: logger}
	lambda.Start(handler.Handle)
}
