package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Storage   StorageConfig   `yaml:"storage"`
	Email     EmailConfig     `yaml:"email"`
	Log       LogConfig       `yaml:"log"`
	Realtime  RealtimeConfig  `yaml:"realtime"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings. The original frontend relied on
// transport defaults; timeouts here are explicit and deliberate.
type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	ReadTimeout int    `yaml:"read_timeout_seconds"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// JWTConfig holds the secret shared with the external identity provider.
// Tokens are only ever validated here, never issued.
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// StorageConfig contains receipt storage settings
type StorageConfig struct {
	UploadDir   string `yaml:"upload_dir"`
	SignSecret  string `yaml:"sign_secret"`
	UploadTTL   int    `yaml:"upload_url_ttl_minutes"`
	MaxFileSize int64  `yaml:"max_file_size_mb"`
	// PublicBaseURL is substituted into every URL handed to clients,
	// regardless of which endpoint the signing happened over.
	PublicBaseURL string   `yaml:"public_base_url"`
	AllowedTypes  []string `yaml:"allowed_types"`
}

// EmailConfig contains SendGrid settings
type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromEmail      string `yaml:"from_email"`
	FromName       string `yaml:"from_name"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// RealtimeConfig tunes the change-feed listener.
type RealtimeConfig struct {
	MinReconnect int `yaml:"min_reconnect_seconds"`
	MaxReconnect int `yaml:"max_reconnect_seconds"`
	// CoalesceWindow is how long the reloader waits after an event for the
	// burst to settle before issuing one snapshot reload.
	CoalesceWindowMillis int `yaml:"coalesce_window_millis"`
}

// SchedulerConfig holds cron expressions (with seconds) for background jobs.
type SchedulerConfig struct {
	PendingReminders string `yaml:"pending_reminders"`
	StaleUploadSweep string `yaml:"stale_upload_sweep"`
	SweepAgeHours    int    `yaml:"sweep_age_hours"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}
	if val := os.Getenv("STORAGE_SIGN_SECRET"); val != "" {
		c.Storage.SignSecret = val
	}
	if val := os.Getenv("STORAGE_PUBLIC_BASE_URL"); val != "" {
		c.Storage.PublicBaseURL = val
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
}

func (c *Config) applyDefaults() {
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Storage.UploadTTL == 0 {
		c.Storage.UploadTTL = 15
	}
	if c.Storage.MaxFileSize == 0 {
		c.Storage.MaxFileSize = 3
	}
	if c.Realtime.MinReconnect == 0 {
		c.Realtime.MinReconnect = 2
	}
	if c.Realtime.MaxReconnect == 0 {
		c.Realtime.MaxReconnect = 60
	}
	if c.Realtime.CoalesceWindowMillis == 0 {
		c.Realtime.CoalesceWindowMillis = 200
	}
	if c.Scheduler.PendingReminders == "" {
		c.Scheduler.PendingReminders = "0 0 9 * * *"
	}
	if c.Scheduler.StaleUploadSweep == "" {
		c.Scheduler.StaleUploadSweep = "0 30 3 * * *"
	}
	if c.Scheduler.SweepAgeHours == 0 {
		c.Scheduler.SweepAgeHours = 48
	}
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" || c.Database.Database == "" {
		return fmt.Errorf("database.host and database.database are required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	if c.Storage.SignSecret == "" {
		return fmt.Errorf("storage.sign_secret is required")
	}
	return nil
}

// GetServerAddress returns the host:port the HTTP server binds to.
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetDatabaseConnectionString builds the lib/pq connection string.
func (c *Config) GetDatabaseConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Database, sslMode)
}

// ReadTimeoutDuration returns the HTTP read timeout.
func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Second
}
