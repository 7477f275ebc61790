// Package config loads the service configuration from a TOML file.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/beautylounge/salon-booking-service/internal/domain"
)

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Salon    SalonConfig    `toml:"salon"`
	Auth     AuthConfig     `toml:"auth"`
	Stripe   StripeConfig   `toml:"stripe"`
	Email    EmailConfig    `toml:"email"`
}

// ServerConfig configures the HTTP server. Timeouts are in seconds.
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig configures the Postgres connection pool.
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN builds the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig configures the session store.
type RedisConfig struct {
	Addr           string `toml:"addr"`
	Password       string `toml:"password"`
	DB             int    `toml:"db"`
	SessionTTLHrs  int    `toml:"session_ttl_hours"`
	SessionsPrefix string `toml:"sessions_prefix"`
}

// SessionTTL returns the session lifetime (default 72h).
func (r RedisConfig) SessionTTL() time.Duration {
	if r.SessionTTLHrs <= 0 {
		return 72 * time.Hour
	}
	return time.Duration(r.SessionTTLHrs) * time.Hour
}

// LogsConfig configures the logger.
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig configures Prometheus exposure.
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// SalonConfig carries the salon business rules applied on top of the
// admin-configured monthly schedules.
type SalonConfig struct {
	// Timezone is the IANA identifier of the salon's local timezone. All
	// schedule wall-clock values and slot output are in this zone.
	Timezone string `toml:"timezone"`
	// ClosedWeekday is always closed regardless of schedule configuration
	// (0=Sunday ... 6=Saturday). Absent means the salon default.
	ClosedWeekday *int   `toml:"closed_weekday"`
	LunchStart    string `toml:"lunch_start"`
	LunchEnd      string `toml:"lunch_end"`
	// PublicBaseURL is the customer-facing site origin, used in emails.
	PublicBaseURL string `toml:"public_base_url"`
	AdminEmail    string `toml:"admin_email"`
}

// AuthConfig configures password hashing and tokens.
type AuthConfig struct {
	BcryptCost          int `toml:"bcrypt_cost"`
	ResetTokenTTLMins   int `toml:"reset_token_ttl_minutes"`
	SessionCookieSecure bool `toml:"session_cookie_secure"`
}

// ResetTokenTTL returns the password-reset token lifetime (default 1h).
func (a AuthConfig) ResetTokenTTL() time.Duration {
	if a.ResetTokenTTLMins <= 0 {
		return time.Hour
	}
	return time.Duration(a.ResetTokenTTLMins) * time.Minute
}

// StripeConfig configures checkout.
type StripeConfig struct {
	SecretKey     string `toml:"secret_key"`
	WebhookSecret string `toml:"webhook_secret"`
	Currency      string `toml:"currency"`
	SuccessURL    string `toml:"success_url"`
	CancelURL     string `toml:"cancel_url"`
}

// EmailConfig configures the SES mailer.
type EmailConfig struct {
	Region          string `toml:"region"`
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
	Sender          string `toml:"sender"`
}

// Load reads and validates the configuration file.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "salon-booking-service"
	}
	if cfg.Redis.SessionsPrefix == "" {
		cfg.Redis.SessionsPrefix = "session"
	}
	if cfg.Salon.Timezone == "" {
		cfg.Salon.Timezone = domain.DefaultTimezone
	}
	if cfg.Salon.ClosedWeekday == nil {
		closed := int(domain.DefaultClosedWeekday)
		cfg.Salon.ClosedWeekday = &closed
	}
	if cfg.Salon.LunchStart == "" {
		cfg.Salon.LunchStart = domain.DefaultLunchStart
	}
	if cfg.Salon.LunchEnd == "" {
		cfg.Salon.LunchEnd = domain.DefaultLunchEnd
	}
	if cfg.Stripe.Currency == "" {
		cfg.Stripe.Currency = "xof"
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if *cfg.Salon.ClosedWeekday < 0 || *cfg.Salon.ClosedWeekday > 6 {
		return fmt.Errorf("salon.closed_weekday must be between 0 (Sunday) and 6 (Saturday)")
	}
	if _, err := time.LoadLocation(cfg.Salon.Timezone); err != nil {
		return fmt.Errorf("salon.timezone %q is not a valid IANA identifier: %w", cfg.Salon.Timezone, err)
	}
	return nil
}
