package config

import (
	"log"
	"strings"
	"time"
	_ "time/tzdata" // LEDGER_TIMEZONE must resolve in minimal containers

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string
	JWTIssuer      string

	// Ledger
	Timezone      string        // calendar used for "today"
	LeaseSeedPath string        // JSON leases loaded into the in-memory store
	RedisURL      string        // optional; enables cross-instance locks
	LockTTL       time.Duration // expiry of per-charge / per-lease locks

	// HTTP
	RateLimit          string // ulule/limiter formatted rate, e.g. "100-M"
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "property-ledger")
	viper.SetDefault("LEDGER_TIMEZONE", "UTC")
	viper.SetDefault("LEASE_SEED_FILE", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("LOCK_TTL", "10s")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using in-memory store.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	lockTTLStr := viper.GetString("LOCK_TTL")
	lockTTL, err := time.ParseDuration(lockTTLStr)
	if err != nil || lockTTL <= 0 {
		lockTTL = 10 * time.Second
		log.Printf("Warning: Invalid value for LOCK_TTL ('%s'). Defaulting to %s.\n", lockTTLStr, lockTTL.String())
	}

	cfg.Timezone = viper.GetString("LEDGER_TIMEZONE")
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		log.Printf("Warning: Unknown LEDGER_TIMEZONE ('%s'). Defaulting to UTC.\n", cfg.Timezone)
		cfg.Timezone = "UTC"
	}

	origins := []string{}
	for _, o := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.LeaseSeedPath = viper.GetString("LEASE_SEED_FILE")
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.LockTTL = lockTTL
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = origins

	return cfg, nil
}
