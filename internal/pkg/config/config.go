package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
)

func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "wallet-service")
	configs.App.Environment = GetEnv("APP_ENV", "")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 0)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 0)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 0)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 0)
	configs.Server.RateLimitPerMinute = GetEnvAsInt("SERVER_RATE_LIMIT_PER_MINUTE", 0)

	// Database config
	configs.Database.Driver = GetEnv("DB_DRIVER", "pgx")
	configs.Database.Host = GetEnv("DB_HOST", "")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 0)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 0)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 0)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 0)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 0)

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "")

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET", "")
	configs.JWT.Expiration = GetEnvAsInt("JWT_EXPIRATION", 0)
	configs.JWT.Issuer = GetEnv("JWT_ISSUER", "")

	// API key config for internal callers, format "name:key,name:key"
	configs.APIKey.Keys = parseAPIKeys(GetEnv("API_KEYS", ""))

	// Wallet config
	configs.Wallet.DefaultCurrency = GetEnv("WALLET_DEFAULT_CURRENCY", "USD")
	configs.Wallet.WithdrawalRequireConfirmation = GetEnvAsBool("WALLET_WITHDRAWAL_REQUIRE_CONFIRMATION", true)
	configs.Wallet.CashOutExpiryMinutes = GetEnvAsInt("WALLET_CASHOUT_EXPIRY_MINUTES", 30)
	configs.Wallet.TransferExpiryHours = GetEnvAsInt("WALLET_TRANSFER_EXPIRY_HOURS", 24)
	configs.Wallet.SweepIntervalSeconds = GetEnvAsInt("WALLET_SWEEP_INTERVAL_SECONDS", 60)
	configs.Wallet.SweepBatchSize = GetEnvAsInt("WALLET_SWEEP_BATCH_SIZE", 100)
	configs.Wallet.LockTimeoutMillis = GetEnvAsInt("WALLET_LOCK_TIMEOUT_MILLIS", 3000)
	configs.Wallet.ListCacheTTLMinutes = GetEnvAsInt("WALLET_LIST_CACHE_TTL_MINUTES", 15)
	configs.Wallet.IdempotencyTTLHours = GetEnvAsInt("WALLET_IDEMPOTENCY_TTL_HOURS", 24)

	// Webhook config
	configs.Webhook.PaysendSecret = GetEnv("WEBHOOK_PAYSEND_SECRET", "")
	configs.Webhook.IPAllowlist = splitNonEmpty(GetEnv("WEBHOOK_IP_ALLOWLIST", ""))

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", "")
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)
	configs.NewRelic.ForwardLogs = GetEnvAsBool("NEW_RELIC_FORWARD_LOGS", false)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "logs/wallet-service.log")

	return configs
}

func splitNonEmpty(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseAPIKeys(value string) map[string]string {
	keys := make(map[string]string)
	for _, pair := range splitNonEmpty(value) {
		name, key, found := strings.Cut(pair, ":")
		if !found || name == "" || key == "" {
			log.Printf("Warning: Skipping malformed API key entry")
			continue
		}
		keys[name] = key
	}
	return keys
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
