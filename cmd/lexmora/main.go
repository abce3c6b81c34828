package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lexmora/internal/config"
	"lexmora/internal/handler"
	"lexmora/internal/httpapi"
	"lexmora/internal/importer"
	"lexmora/internal/jobs"
	"lexmora/internal/middleware"
	"lexmora/internal/repository"
	"lexmora/internal/repository/postgres"
	"lexmora/internal/repository/sqlite"
	"lexmora/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	importPath := flag.String("import", "", "import words from an xlsx or csv file and exit")
	flag.Parse()

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Lexmora")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully", zap.String("storage", cfg.StorageDriver))

	wordRepo, closer, err := openStorage(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer closer.Close()

	// Initialize services
	wordService := service.NewWordService(wordRepo, logger)
	statsService := service.NewStatsService(wordRepo, cfg.Location, logger)

	if *importPath != "" {
		runImport(*importPath, wordService, logger)
		return
	}

	// HTTP API
	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(wordService, statsService, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Telegram bot
	var bot *tele.Bot
	if cfg.Bot.Enabled() {
		bot, err = tele.NewBot(tele.Settings{
			Token:  cfg.Bot.Token,
			Poller: &tele.LongPoller{Timeout: 10 * time.Second},
			OnError: func(err error, c tele.Context) {
				logger.Error("Bot handler failed", zap.Error(err))
			},
		})
		if err != nil {
			logger.Fatal("Failed to create bot", zap.Error(err))
		}

		bot.Use(middleware.AccessMiddleware(cfg.Bot.AllowedUsers, logger))

		h := handler.NewHandler(bot, wordService, statsService, cfg.Location, logger)
		h.RegisterHandlers()

		go func() {
			logger.Info("Bot started successfully", zap.Int("allowed_users", len(cfg.Bot.AllowedUsers)))
			bot.Start()
		}()
	} else {
		logger.Info("BOT_TOKEN not set, Telegram bot disabled")
	}

	// Periodic progress report
	scheduler := jobs.New(statsService, cfg.ReportInterval, cfg.Location, logger)
	if err := scheduler.Start(); err != nil {
		logger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping...")

	// Graceful shutdown
	scheduler.Stop()
	if bot != nil {
		bot.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Lexmora stopped gracefully")
}

// openStorage connects the configured storage engine and prepares its schema
func openStorage(cfg *config.Config, logger *zap.Logger) (repository.WordRepository, io.Closer, error) {
	if cfg.StorageDriver == config.DriverPostgres {
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Database connection established")

		if err := runMigrations(db, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewWordRepo(db), db, nil
	}

	db, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("SQLite database opened", zap.String("path", cfg.SQLitePath))
	return sqlite.NewWordRepo(db), db, nil
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations applies the SQL files in migrations/
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// runImport bulk-captures the rows of an xlsx or csv file
func runImport(path string, words *service.WordService, logger *zap.Logger) {
	im := importer.New(words, importer.DefaultConfig(), logger)

	result, err := im.ImportFile(context.Background(), path)
	if err != nil {
		logger.Fatal("Import failed", zap.String("path", path), zap.Error(err))
	}

	fmt.Printf("Processed: %d\nCreated: %d\nSkipped: %d\nErrors: %d\n",
		result.TotalProcessed, result.Created, result.Skipped, len(result.Errors))
	for _, e := range result.Errors {
		fmt.Println("  " + e)
	}
}
