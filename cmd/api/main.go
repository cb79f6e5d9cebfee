package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/ai-literacy/toolbox/docs"
	"github.com/ai-literacy/toolbox/internal/config"
	"github.com/ai-literacy/toolbox/internal/handlers"
	"github.com/ai-literacy/toolbox/internal/logger"
	"github.com/ai-literacy/toolbox/internal/middleware"
	"github.com/ai-literacy/toolbox/internal/notification"
	"github.com/ai-literacy/toolbox/internal/repositories"
	"github.com/ai-literacy/toolbox/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hibiken/asynq"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// @title AI Literacy Toolbox API
// @version 1.0
// @description Submission, moderation and rating API of the AI Literacy Toolbox catalog

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /ai-literacy-toolbox/api
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

	logger.Logger.Info("Starting AI Literacy Toolbox API", zap.String("storage", cfg.Storage.Driver))

	// Open the submission store
	var repo services.SubmissionRepository
	switch cfg.Storage.Driver {
	case config.StorageMySQL:
		db, err := connectDB(cfg.DSN())
		if err != nil {
			logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := runMigrations(db); err != nil {
			logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		repo = repositories.NewSubmissionRepository(db, logger.Logger)
	case config.StorageMongo:
		client, err := connectMongo(cfg.Mongo.URI)
		if err != nil {
			logger.Logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer client.Disconnect(context.Background())

		mongoRepo := repositories.NewMongoSubmissionRepository(client.Database(cfg.Mongo.Database), cfg.Mongo.Collection, logger.Logger)
		if err := mongoRepo.EnsureIndexes(context.Background()); err != nil {
			logger.Logger.Fatal("Failed to create MongoDB indexes", zap.Error(err))
		}
		repo = mongoRepo
	default:
		logger.Logger.Warn("Using in-memory storage; submissions are lost on restart")
		repo = repositories.NewMemorySubmissionRepository()
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	// Notifications are best effort, so an unreachable Redis only degrades the API
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Logger.Warn("Redis is unreachable; notifications will be reported as warnings", zap.Error(err))
	}

	// Create Asynq client
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	// Initialize services
	dispatcher := notification.NewAsynqDispatcher(asynqClient, cfg.Delivery.MaxRetry)
	submissionService := services.NewSubmissionService(repo, dispatcher, logger.Logger)

	// Initialize handlers
	submissionHandler := handlers.NewSubmissionHandler(submissionService, logger.Logger)
	emailHandler := handlers.NewEmailHandler(submissionService, logger.Logger)
	statusHandler := handlers.NewStatusHandler(map[string]handlers.HealthCheck{
		"storage": submissionService.Ping,
		"queue": func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
	}, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger.Logger))
	r.Use(middleware.Recovery(logger.Logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middleware.RequestSizeLimit(middleware.DefaultMaxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	r.Route(cfg.Server.BasePath+"/api", func(r chi.Router) {
		submissionHandler.RegisterRoutes(r)
		emailHandler.RegisterRoutes(r)
		statusHandler.RegisterRoutes(r)
	})

	// Front-end bundle
	if cfg.StaticDir != "" {
		static := handlers.NewStaticHandler(cfg.StaticDir)
		if cfg.Server.BasePath == "" {
			r.Handle("/*", static)
		} else {
			r.Handle(cfg.Server.BasePath+"/*", http.StripPrefix(cfg.Server.BasePath, static))
			r.Handle(cfg.Server.BasePath, http.RedirectHandler(cfg.Server.BasePath+"/", http.StatusMovedPermanently))
		}
	}

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port), zap.String("base_path", cfg.Server.BasePath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
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

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "toolbox_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Migrations live at the module root; fall back to it when started from cmd/api
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		if _, err := os.Stat("../../migrations"); err == nil {
			migrationPath = "file://../../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(migrationPath, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
