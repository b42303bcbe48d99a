package models

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	JWT      JWTConfig
	APIKey   APIKeyConfig
	Wallet   WalletConfig
	Webhook  WebhookConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host               string
	Port               int
	ReadTimeout        int
	WriteTimeout       int
	ShutdownTimeout    int
	RateLimitPerMinute int // 0 disables rate limiting
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// APIKeyConfig maps internal caller names to their API keys
// for service-to-service endpoints (webhooks, ATM gateway).
type APIKeyConfig struct {
	Keys map[string]string
}

// WalletConfig contains wallet and transaction processing configuration
type WalletConfig struct {
	DefaultCurrency string

	// WithdrawalRequireConfirmation selects the withdrawal flow: when
	// true a withdrawal stays PENDING until the ATM gateway verifies
	// the withdrawal code; when false it completes immediately.
	WithdrawalRequireConfirmation bool

	CashOutExpiryMinutes int
	TransferExpiryHours  int
	SweepIntervalSeconds int
	SweepBatchSize       int
	LockTimeoutMillis    int
	ListCacheTTLMinutes  int
	IdempotencyTTLHours  int
}

// WebhookConfig contains external provider webhook configuration
type WebhookConfig struct {
	PaysendSecret string
	IPAllowlist   []string
}

// NewRelicConfig contains New Relic APM configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	ForwardLogs bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
