package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/core/services"
	"github.com/SscSPs/property_ledger/internal/handlers"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/SscSPs/property_ledger/internal/platform/clock"
	"github.com/SscSPs/property_ledger/internal/platform/config"
	"github.com/SscSPs/property_ledger/internal/platform/lock"
	"github.com/SscSPs/property_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/property_ledger/internal/repositories/memory"
	"github.com/SscSPs/property_ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Property Ledger API
// @version 1.0
// @description Billing and debt-servicing ledger: charges, payments, late fees and mortgages.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	var repos portsrepo.RepositoryProvider
	if cfg.DatabaseURL != "" {
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)

		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repos = pgsql.NewRepositoryProvider(dbPool)
	} else {
		logger.Warn("Running against the in-memory store; nothing is persisted")
		store := memory.NewStore()
		if cfg.LeaseSeedPath != "" {
			if err := seedLeases(store, cfg.LeaseSeedPath, logger); err != nil {
				logger.Error("Failed to seed leases", slog.String("path", cfg.LeaseSeedPath), slog.String("error", err.Error()))
				os.Exit(1)
			}
		} else {
			logger.Warn("LEASE_SEED_FILE not set; lease-scoped routes will return lease not found")
		}
		repos = store.Repositories()
	}

	var locker lock.Locker = lock.NewLocalLocker()
	if cfg.RedisURL != "" {
		client, err := lock.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if cerr := client.Close(); cerr != nil {
				logger.Error("Error closing redis client", slog.String("error", cerr.Error()))
			}
		}()
		locker = lock.NewRedisLocker(client, cfg.LockTTL)
		logger.Info("Using redis locks", slog.Duration("ttl", cfg.LockTTL))
	}

	serviceContainer := services.NewServiceContainer(repos,
		services.WithClock(clock.NewSystemClock(clock.LoadLocation(cfg.Timezone))),
		services.WithLocker(locker),
	)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("timezone", cfg.Timezone))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func seedLeases(store *memory.Store, path string, logger *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := store.LoadLeases(f)
	if err != nil {
		return err
	}
	logger.Info("Seeded leases into the in-memory store", slog.Int("count", n), slog.String("path", path))
	return nil
}
