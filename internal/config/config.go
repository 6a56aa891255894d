package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Leads     LeadsConfig
	Scheduler SchedulerConfig
	Dashboard DashboardConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for the entity store.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// RedisConfig holds settings for the property-search cache. An empty Addr
// disables caching entirely.
type RedisConfig struct {
	Addr     string
	Password string
	CacheTTL time.Duration
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// LeadsConfig holds lead-capture side-channel settings. An empty WebhookURL
// disables outbound notifications.
type LeadsConfig struct {
	WebhookURL string
}

// SchedulerConfig holds the cron expressions for the background jobs.
type SchedulerConfig struct {
	ReminderCron string
	RentDueCron  string
}

// DashboardConfig bounds a single dashboard computation.
type DashboardConfig struct {
	Timeout time.Duration
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "estate"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			CacheTTL: getenvDuration("PROPERTY_CACHE_TTL", 10*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  getenvDuration("JWT_TTL", 24*time.Hour),
		},
		Leads: LeadsConfig{
			WebhookURL: os.Getenv("LEAD_WEBHOOK_URL"),
		},
		Scheduler: SchedulerConfig{
			// Appointment reminders every morning, rent-due sweep on the 1st.
			ReminderCron: getenvWithDefault("REMINDER_CRON_SCHEDULE", "0 9 * * *"),
			RentDueCron:  getenvWithDefault("RENT_DUE_CRON_SCHEDULE", "0 10 1 * *"),
		},
		Dashboard: DashboardConfig{
			Timeout: getenvDuration("DASHBOARD_TIMEOUT", 15*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}
	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be provided")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be a positive duration")
	}

	if c.Scheduler.ReminderCron == "" {
		return errors.New("REMINDER_CRON_SCHEDULE must be provided")
	}
	if c.Scheduler.RentDueCron == "" {
		return errors.New("RENT_DUE_CRON_SCHEDULE must be provided")
	}

	if c.Dashboard.Timeout <= 0 {
		return errors.New("DASHBOARD_TIMEOUT must be a positive duration")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
