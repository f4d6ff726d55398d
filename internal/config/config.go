package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	LogFormat string // console | json

	// Content store backend: sql | mongo | memory
	ContentStore string
	// Optional YAML overriding the built-in section defaults
	DefaultsFile string

	DBDriver   string // postgres | sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	MongoURI      string
	MongoDatabase string

	JWTSecret    string
	JWTExpiresIn string // minutes

	AdminEmail    string
	AdminPassword string
	AdminFullName string

	// Contact lead notifications
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	NotifyEmail  string

	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

var defaults = map[string]any{
	"PORT":             "8080",
	"GIN_MODE":         "release",
	"LOG_LEVEL":        "info",
	"LOG_FORMAT":       "console",
	"CONTENT_STORE":    "sql",
	"DEFAULTS_FILE":    "",
	"DB_DRIVER":        "postgres",
	"DB_HOST":          "localhost",
	"DB_PORT":          "5432",
	"DB_USER":          "postgres",
	"DB_PASSWORD":      "postgres",
	"DB_NAME":          "agency_db",
	"DB_SSLMODE":       "disable",
	"SQLITE_PATH":      "agency.db",
	"MONGO_URI":        "mongodb://localhost:27017",
	"MONGO_DATABASE":   "agency",
	"JWT_SECRET":       "supersecret_change_me",
	"JWT_EXPIRES_IN":   "60",
	"ADMIN_EMAIL":      "admin@example.com",
	"ADMIN_PASSWORD":   "admin123",
	"ADMIN_FULL_NAME":  "Administrator",
	"SMTP_HOST":        "",
	"SMTP_PORT":        "587",
	"SMTP_USERNAME":    "",
	"SMTP_PASSWORD":    "",
	"SMTP_FROM":        "noreply@example.com",
	"NOTIFY_EMAIL":     "",
	"CORS_ORIGINS":     "*",
	"SHUTDOWN_TIMEOUT": "10s",
}

// Load reads configuration from the environment, falling back to an optional
// YAML file named by CONFIG_FILE and then to built-in defaults.
func Load() (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	shutdown, err := time.ParseDuration(v.GetString("SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:            v.GetString("PORT"),
		GinMode:         v.GetString("GIN_MODE"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
		ContentStore:    strings.ToLower(v.GetString("CONTENT_STORE")),
		DefaultsFile:    v.GetString("DEFAULTS_FILE"),
		DBDriver:        strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:          v.GetString("DB_HOST"),
		DBPort:          v.GetString("DB_PORT"),
		DBUser:          v.GetString("DB_USER"),
		DBPassword:      v.GetString("DB_PASSWORD"),
		DBName:          v.GetString("DB_NAME"),
		DBSSLMode:       v.GetString("DB_SSLMODE"),
		SQLitePath:      v.GetString("SQLITE_PATH"),
		MongoURI:        v.GetString("MONGO_URI"),
		MongoDatabase:   v.GetString("MONGO_DATABASE"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTExpiresIn:    v.GetString("JWT_EXPIRES_IN"),
		AdminEmail:      v.GetString("ADMIN_EMAIL"),
		AdminPassword:   v.GetString("ADMIN_PASSWORD"),
		AdminFullName:   v.GetString("ADMIN_FULL_NAME"),
		SMTPHost:        v.GetString("SMTP_HOST"),
		SMTPPort:        v.GetString("SMTP_PORT"),
		SMTPUsername:    v.GetString("SMTP_USERNAME"),
		SMTPPassword:    v.GetString("SMTP_PASSWORD"),
		SMTPFrom:        v.GetString("SMTP_FROM"),
		NotifyEmail:     v.GetString("NOTIFY_EMAIL"),
		CORSOrigins:     splitList(v.GetString("CORS_ORIGINS")),
		ShutdownTimeout: shutdown,
	}
	return cfg, nil
}

// TokenTTL returns the admin access token lifetime.
func (c *Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTExpiresIn + "m")
	if err != nil || d <= 0 {
		return 60 * time.Minute
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
