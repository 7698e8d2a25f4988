package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ordering/cmd"
	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/kafka"
	postgresadapter "ordering/internal/adapters/out/postgres"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgresadapter.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	publisher, err := kafka.NewPublisher(configs.KafkaBrokers(), logger)
	if err != nil {
		log.Fatalf("Error creating kafka publisher: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)

	jobManager, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("Error creating jobs: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	e, err := httpin.NewRouter(app.CreateServer(), logger)
	if err != nil {
		log.Fatalf("Error creating router: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startWebServer(ctx, e, configs.HTTPPort, logger)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", "error", err)
	}
	jobManager.StopAll()
	if err = app.Dispatcher().Wait(shutdownCtx); err != nil {
		logger.Warn("side effects still running at shutdown", "error", err)
	}
	if err = publisher.Close(); err != nil {
		logger.Error("kafka publisher close", "error", err)
	}
	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}
	logger.Info("stopped")
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

// startWebServer serves until ctx is cancelled or the listener fails.
func startWebServer(ctx context.Context, e *echo.Echo, port string, logger *slog.Logger) {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()
	logger.Info("http server started", "port", port)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
		}
	}
}
