package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ai-literacy/toolbox/internal/config"
	"github.com/ai-literacy/toolbox/internal/logger"
	"github.com/ai-literacy/toolbox/internal/notification"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting AI Literacy Toolbox notification worker")

	if cfg.SMTP.Host == "" {
		logger.Logger.Fatal("SMTP_HOST is required for the worker")
	}

	// Create Asynq server
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				notification.QueueName: 1,
			},
			Logger: logger.Logger.Sugar(),
		},
	)

	sender := notification.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	worker := NewWorker(logger.Logger, sender, notification.Addresses{
		Admin:   cfg.Mail.AdminAddress,
		Contact: cfg.Mail.ContactAddress,
	})

	// Register task handlers
	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TaskTypeDeliver, worker.HandleDelivery)

	// Start worker
	if err := srv.Start(mux); err != nil {
		logger.Logger.Fatal("Failed to start worker", zap.Error(err))
	}

	logger.Logger.Info("Worker started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down worker...")
	srv.Shutdown()
	logger.Logger.Info("Worker exited")
}
