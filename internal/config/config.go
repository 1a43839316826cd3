package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	DiscordToken   string
	DiscordAppID   string
	DiscordGuildID string
	// OperatorUserID is the member granted access to every client channel.
	OperatorUserID string

	IdentityBaseURL string
	IdentityAPIKey  string
	BillingBaseURL  string
	BillingAPIKey   string
	WebhookBaseURL  string
	WebhookAPIKey   string
	LogoBaseURL     string
	LogoToken       string

	MetricsAddr string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
}

// Module provides Config and the hot-reloadable pricing holder.
var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewPricingHolder),
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "portcullis-bot"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),

		DiscordToken:   strings.TrimSpace(getenv("DISCORD_TOKEN", "")),
		DiscordAppID:   strings.TrimSpace(getenv("DISCORD_APP_ID", "")),
		DiscordGuildID: strings.TrimSpace(getenv("DISCORD_GUILD_ID", "")),
		OperatorUserID: strings.TrimSpace(getenv("OPERATOR_USER_ID", "")),

		IdentityBaseURL: getenv("IDENTITY_BASE_URL", "https://api.clerk.com/v1"),
		IdentityAPIKey:  strings.TrimSpace(getenv("IDENTITY_API_KEY", "")),
		BillingBaseURL:  getenv("BILLING_BASE_URL", "https://api.hyperline.co/v1"),
		BillingAPIKey:   strings.TrimSpace(getenv("BILLING_API_KEY", "")),
		WebhookBaseURL:  getenv("WEBHOOK_BASE_URL", "https://api.us.svix.com/api/v1"),
		WebhookAPIKey:   strings.TrimSpace(getenv("WEBHOOK_API_KEY", "")),
		LogoBaseURL:     getenv("LOGO_BASE_URL", "https://img.logo.dev"),
		LogoToken:       strings.TrimSpace(getenv("LOGO_TOKEN", "")),

		MetricsAddr: getenv("METRICS_ADDR", ":8080"),

		DBType:            getenv("DATABASE_TYPE", "sqlite"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "portcullis"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 2),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 10),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 600),
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
