package config

import (
	"errors"  // For validation errors
	"fmt"     // For DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list parsing
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"    // MySQL / MariaDB
	DriverPostgres = "postgres" // PostgreSQL
	DriverSQLite   = "sqlite"   // Local file database, DB_NAME is the path
)

// Config holds the application configuration
type Config struct {
	AppPort        string        // Application port
	DBDriver       string        // Database driver: mysql, postgres or sqlite
	DBUser         string        // Database user
	DBPassword     string        // Database password
	DBHost         string        // Database host
	DBPort         string        // Database port
	DBName         string        // Database name
	DBMaxOpenConns int           // Upper bound of open connections in the pool
	DBMaxIdleConns int           // Idle connections kept in the pool
	RedisAddr      string        // Redis server address
	RedisPass      string        // Redis password
	RedisDB        int           // Redis database number
	SessionSecret  string        // Key used to sign session cookies
	SessionCookie  string        // Session cookie name
	SessionTTL     time.Duration // Session lifetime
	CacheTTL       time.Duration // Product cache lifetime
	CORSOrigins    []string      // Allowed CORS origins
	LogLevel       string        // Logrus level name
	IsProd         bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:        getEnv("APP_PORT", "3000"),                        // Application port
		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)), // Database driver
		DBUser:         os.Getenv("DB_USER"),                              // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),                          // Database password
		DBHost:         getEnv("DB_HOST", "localhost"),                    // Database host
		DBPort:         os.Getenv("DB_PORT"),                              // Database port, driver default when empty
		DBName:         getEnv("DB_NAME", "ecommerce_db"),                 // Database name
		DBMaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 25),                   // Pool size
		DBMaxIdleConns: getInt("DB_MAX_IDLE_CONNS", 5),                    // Idle pool size
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),            // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),                           // Redis password
		RedisDB:        getInt("REDIS_DB", 0),                             // Redis database number
		SessionSecret:  getEnv("SESSION_SECRET", "default-secret-key"),    // Session signing key
		SessionCookie:  getEnv("SESSION_COOKIE", "shop.sid"),              // Session cookie name
		SessionTTL:     getDuration("SESSION_TTL", 24*time.Hour),          // Session lifetime
		CacheTTL:       getDuration("CACHE_TTL", 60*time.Second),          // Product cache lifetime
		CORSOrigins:    getList("CORS_ORIGINS", []string{"*"}),            // Allowed CORS origins
		LogLevel:       getEnv("LOG_LEVEL", "info"),                       // Log level
		IsProd:         os.Getenv("IS_PROD") == "true",                    // Is production environment
	}
}

// Validate reports configuration that cannot run
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver) // Unknown driver
	}
	if c.IsProd && (c.SessionSecret == "" || c.SessionSecret == "default-secret-key") {
		return errors.New("SESSION_SECRET must be set in production") // Refuse the default signing key
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return SQLiteDSN(c.DBName)
	}
	if c.DBDriver == DriverPostgres {
		port := c.DBPort
		if port == "" {
			port = "5432" // Default PostgreSQL port
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, port)
	}
	port := c.DBPort
	if port == "" {
		port = "3306" // Default MySQL port
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true"
}

// SQLiteDSN appends the connection options every SQLite handle needs.
// Foreign keys are off by default in SQLite and must be enabled per connection.
func SQLiteDSN(name string) string {
	sep := "?"
	if strings.Contains(name, "?") {
		sep = "&"
	}
	return name + sep + "_foreign_keys=on"
}

// getEnv returns the variable or a fallback when it is unset or empty
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getInt parses an integer variable, falling back on absence or garbage
func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// getDuration parses a Go duration such as "90s" or "24h"
func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// getList splits a comma separated variable
func getList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
