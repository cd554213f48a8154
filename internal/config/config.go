package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Storage
	StoreDriver    string // memory, sqlite, postgres, badger
	StoreNamespace string
	DataDir        string

	// Database (postgres driver)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Activity log
	ActivityRetention time.Duration

	// Server
	Port               string
	CORSOrigins        string
	RateLimitPerMinute int

	// Error tracking
	SentryDSN string
	AppEnv    string
}

func Load() *Config {
	return &Config{
		StoreDriver:    getEnv("STORE_DRIVER", "sqlite"),
		StoreNamespace: getEnv("STORE_NAMESPACE", "star_devs"),
		DataDir:        getEnv("DATA_DIR", "./data"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "stardevs"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		ActivityRetention: time.Duration(parseInt(getEnv("ACTIVITY_RETENTION_DAYS", "30"), 30)) * 24 * time.Hour,

		Port:               getEnv("PORT", "8080"),
		CORSOrigins:        getEnv("CORS_ORIGINS", "*"),
		RateLimitPerMinute: parseInt(getEnv("RATE_LIMIT_PER_MINUTE", "60"), 60),

		SentryDSN: getEnv("SENTRY_DSN", ""),
		AppEnv:    getEnv("APP_ENV", "development"),
	}
}

// UsesSQL reports whether the configured driver keeps its data in a gorm database.
func (c *Config) UsesSQL() bool {
	return c.StoreDriver == "sqlite" || c.StoreDriver == "postgres"
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
