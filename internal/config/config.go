package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	GinMode  string
	TZ       string
	HTTPAddr string

	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string

	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnectAttempts int
	DBConnectDelay    time.Duration

	LogLevel  string
	LogFormat string

	CORSAllowOrigins []string
	ShutdownTimeout  time.Duration
}

var defaults = map[string]any{
	"GIN_MODE":             "debug",
	"TZ":                   "UTC",
	"HTTP_ADDR":            ":8080",
	"DB_HOST":              "localhost",
	"DB_PORT":              "5432",
	"DB_USER":              "postgres",
	"DB_PASS":              "",
	"DB_NAME":              "postgres",
	"DB_SSLMODE":           "",
	"DB_MAX_OPEN_CONNS":    25,
	"DB_MAX_IDLE_CONNS":    5,
	"DB_CONN_MAX_LIFETIME": 30 * time.Minute,
	"DB_CONNECT_ATTEMPTS":  10,
	"DB_CONNECT_DELAY":     2 * time.Second,
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "text",
	"CORS_ALLOW_ORIGINS":   "*",
	"SHUTDOWN_TIMEOUT":     10 * time.Second,
}

// Load reads the process environment, after merging a .env file when one
// exists. ENV_FILE overrides the file name.
func Load() (*Config, error) {
	loadDotEnv()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{
		GinMode:           v.GetString("GIN_MODE"),
		TZ:                v.GetString("TZ"),
		HTTPAddr:          v.GetString("HTTP_ADDR"),
		DBHost:            v.GetString("DB_HOST"),
		DBPort:            v.GetString("DB_PORT"),
		DBUser:            v.GetString("DB_USER"),
		DBPass:            v.GetString("DB_PASS"),
		DBName:            v.GetString("DB_NAME"),
		DBSSLMode:         v.GetString("DB_SSLMODE"),
		DBMaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		DBConnectAttempts: v.GetInt("DB_CONNECT_ATTEMPTS"),
		DBConnectDelay:    v.GetDuration("DB_CONNECT_DELAY"),
		LogLevel:          strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:         strings.ToLower(v.GetString("LOG_FORMAT")),
		CORSAllowOrigins:  splitList(v.GetString("CORS_ALLOW_ORIGINS")),
		ShutdownTimeout:   v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if cfg.DBSSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost,
		c.DBUser,
		c.DBPass,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
		c.TZ,
	)
}

func (c *Config) validate() error {
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid GIN_MODE %q", c.GinMode)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", c.LogFormat)
	}
	if c.DBConnectAttempts < 1 {
		return fmt.Errorf("DB_CONNECT_ATTEMPTS must be at least 1, got %d", c.DBConnectAttempts)
	}
	if c.DBMaxOpenConns < 0 || c.DBMaxIdleConns < 0 {
		return errors.New("DB pool sizes must not be negative")
	}
	return nil
}

func loadDotEnv() {
	path := ".env"
	if p := strings.TrimSpace(os.Getenv("ENV_FILE")); p != "" {
		path = p
	}

	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: could not load %s: %v", path, err)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
