package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/quantor-dev/cerberus/adapters/events"
	"github.com/quantor-dev/cerberus/adapters/hasher"
	"github.com/quantor-dev/cerberus/adapters/registry"
	"github.com/quantor-dev/cerberus/adapters/tokenizer"
	"github.com/quantor-dev/cerberus/adapters/users"
	"github.com/quantor-dev/cerberus/config"
	"github.com/quantor-dev/cerberus/internal/logging"
	"github.com/quantor-dev/cerberus/ports"
	"github.com/quantor-dev/cerberus/service"
	"github.com/quantor-dev/cerberus/transport/http"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.NewRedactingLogger(
		logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil))),
	)

	// User store: PostgreSQL when a DSN is configured, in-memory otherwise
	var userRepo ports.UserRepository
	if cfg.DatabaseDSN != "" {
		if err := users.RunMigrations(ctx, cfg.DatabaseDSN); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()
		userRepo = users.NewPostgresRepository(pool)
	} else {
		logger.Warn(ctx, "DATABASE_DSN not set, using in-memory user store")
		userRepo = users.NewMemoryRepository()
	}

	// Registry and events: Redis when configured, in-memory/no events otherwise
	var tokenRegistry ports.TokenRegistry
	var eventPub ports.EventPublisher
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		tokenRegistry = registry.NewRedisRegistry(redisClient)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: redisClient},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			log.Fatalf("Failed to create event publisher: %v", err)
		}
		eventPub = events.NewWatermillPublisher(publisher)
	} else {
		logger.Warn(ctx, "REDIS_URL not set, using in-memory token registry")
		tokenRegistry = registry.NewMemoryRegistry()
	}

	authService := service.NewAuthService(
		userRepo,
		tokenRegistry,
		tokenizer.NewJWTTokenizer([]byte(cfg.AccessTokenSecret), []byte(cfg.RefreshTokenSecret)),
		hasher.NewBcryptHasher(),
		eventPub,
		logger,
		service.Config{
			AccessTokenTTL:  cfg.AccessTokenTTL,
			RefreshTokenTTL: cfg.RefreshTokenTTL,
		},
	)

	router := http.SetupRouter(authService)

	logger.Info(ctx, "starting server", "addr", cfg.ListenAddr)
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
