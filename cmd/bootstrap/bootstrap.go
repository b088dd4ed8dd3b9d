package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-appointment-scheduling/config"
	"go-appointment-scheduling/internal/infrastructure/cache"
	"go-appointment-scheduling/internal/infrastructure/database"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log := logrus.StandardLogger()
	setupLogger(log, cfg.App.Env)
	log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.Open(cfg.DB, gormLogLevel(cfg.App.Env))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Infof("Database connected successfully (driver=%s)", cfg.DB.Driver)

	if cfg.DB.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info("Database schema migrated")
	}

	if err := SeedAdmin(context.Background(), db, log, cfg.Admin); err != nil {
		return nil, fmt.Errorf("failed to seed admin user: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}
	app.RedisClient = redisClient

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           NewHandler(cfg, db, redisClient, log, registry),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(log *logrus.Logger, env string) {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
	if env == "development" {
		log.SetLevel(logrus.DebugLevel)
	}
}

func gormLogLevel(env string) logger.LogLevel {
	if env == "development" {
		return logger.Info
	}
	return logger.Warn
}

// Run serves HTTP until SIGINT or SIGTERM arrives or the listener fails, then
// drains in-flight requests and releases the database and Redis connections.
func (app *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"port": app.Config.App.Port,
			"env":  app.Config.App.Env,
		}).Info("Server starting")
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logrus.Info("Shutting down server...")
	case err := <-serveErr:
		if err != nil {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}
	app.Close()

	logrus.Info("Server shutdown complete")
	return runErr
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
