package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ai-literacy/toolbox/internal/config"
	"github.com/ai-literacy/toolbox/internal/logger"
	"github.com/ai-literacy/toolbox/internal/repositories"
	"github.com/ai-literacy/toolbox/internal/services"
	_ "github.com/go-sql-driver/mysql"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
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

	logger.Logger.Info("Starting AI Literacy Toolbox scheduler", zap.String("storage", cfg.Storage.Driver))

	var repo services.SubmissionRepository
	switch cfg.Storage.Driver {
	case config.StorageMySQL:
		db, err := connectDB(cfg.DSN())
		if err != nil {
			logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		repo = repositories.NewSubmissionRepository(db, logger.Logger)
	case config.StorageMongo:
		client, err := connectMongo(cfg.Mongo.URI)
		if err != nil {
			logger.Logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer client.Disconnect(context.Background())
		repo = repositories.NewMongoSubmissionRepository(client.Database(cfg.Mongo.Database), cfg.Mongo.Collection, logger.Logger)
	default:
		logger.Logger.Fatal("The scheduler needs a shared store; the memory driver lives inside the API process")
	}

	reconciler := services.NewRatingReconciler(repo, logger.Logger)

	// Create scheduler instance
	scheduler, err := NewScheduler(cfg.Scheduler.ReconcileCron, reconciler, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("Invalid RECONCILE_CRON", zap.String("spec", cfg.Scheduler.ReconcileCron), zap.Error(err))
	}

	// Start scheduler
	scheduler.Start()
	defer func() {
		logger.Logger.Info("Shutting down scheduler...")
		scheduler.Stop()
		logger.Logger.Info("Scheduler exited")
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// connectMongo connects to MongoDB and verifies the connection
func connectMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return client, nil
}
