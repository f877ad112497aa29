// Package server wires the application together and configures the HTTP server.
package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/joho/godotenv/autoload"

	"shopfront/internal/auth"
	"shopfront/internal/database"
	"shopfront/internal/news"
	"shopfront/internal/products"
	"shopfront/internal/session"
	"shopfront/internal/storage"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	db         database.Service
	sessionMgr session.Manager
	authDeps   *auth.Handler
	products   *products.Handler
	news       *news.Handler
	authSvc    auth.Service
	storage    storage.Service
	logger     *slog.Logger
}

// Config holds server configuration
type Config struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// LoadConfigFromEnv loads server configuration from environment variables
func LoadConfigFromEnv() *Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))

	return &Config{
		Port:         port,
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
	}
}

// New assembles the application and returns a configured HTTP server.
// The returned cleanup function closes the database pool.
func New(logger *slog.Logger) (*http.Server, func(), error) {
	cfg := LoadConfigFromEnv()

	db, err := database.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("database ready")

	// Redis is optional; without it session lookups and catalog reads
	// fall back to Postgres on every request.
	cache := newRedisClient(ctx)
	var sessionStore session.Store
	if cache != nil {
		sessionStore = session.NewRedisStore(
			getEnv("REDIS_ADDR", "localhost:6379"),
			os.Getenv("REDIS_PASSWORD"),
			0,
		)
	}

	sessionMgr := session.NewManager(session.NewRepository(db), sessionStore, session.LoadConfigFromEnv())

	authSvc := auth.NewService(auth.NewRepository(db), auth.NewHasher(), logger)
	authHandler := auth.NewHandler(authSvc, sessionMgr, logger)

	// Object storage is optional in local development
	imageStore, err := storage.New(ctx)
	if err != nil {
		logger.Warn("image storage unavailable", "error", err)
		imageStore = nil
	}

	productsHandler := products.NewHandler(
		products.NewService(products.NewRepository(db), cache),
		imageStore,
	)
	newsHandler := news.NewHandler(news.NewRepository(db))

	appServer := &Server{
		db:         db,
		sessionMgr: sessionMgr,
		authDeps:   authHandler,
		products:   productsHandler,
		news:       newsHandler,
		authSvc:    authSvc,
		storage:    imageStore,
		logger:     logger,
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           appServer.RegisterRoutes(),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}

	return httpServer, cleanup, nil
}

// newRedisClient connects to Redis, returning nil when it is unreachable
func newRedisClient(ctx context.Context) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("Warning: Redis connection failed: %v. Caching disabled.", err)
		return nil
	}

	return rdb
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
