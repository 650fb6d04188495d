package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends.
const (
	StorePgsql  = "pgsql"
	StoreMemory = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	StoreBackend string // pgsql or memory
	JWTSecret    string
	JWTIssuer    string

	// Alert publishing
	KafkaBrokers []string
	KafkaTopic   string

	// Requests per minute per client IP on the API group.
	RateLimitPerMinute int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORE_BACKEND", StorePgsql)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "gestium-ledger")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_ALERT_TOPIC", "financial_alerts")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.KafkaTopic = viper.GetString("KAFKA_ALERT_TOPIC")
	cfg.RateLimitPerMinute = viper.GetInt("RATE_LIMIT_PER_MINUTE")

	cfg.StoreBackend = strings.ToLower(viper.GetString("STORE_BACKEND"))
	if cfg.StoreBackend != StorePgsql && cfg.StoreBackend != StoreMemory {
		log.Printf("Warning: unknown STORE_BACKEND %q, defaulting to %s\n", cfg.StoreBackend, StorePgsql)
		cfg.StoreBackend = StorePgsql
	}
	if cfg.StoreBackend == StorePgsql && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if brokers := viper.GetString("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	return cfg, nil
}
