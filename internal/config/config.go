package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Cache      CacheConfig      `yaml:"cache"`
	HolidayAPI HolidayAPIConfig `yaml:"holiday_api"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	Database           string `yaml:"database"`
	SSLMode            string `yaml:"ssl_mode"`
	QueryTimeoutMillis int    `yaml:"query_timeout_millis"` // per store call, default 2000
}

// RedisConfig contains distributed cache connection settings.
// The cache is best-effort: a server that cannot be reached at startup
// disables the distributed tier rather than failing the service.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// CacheConfig contains cache tier TTLs and call timeouts
type CacheConfig struct {
	LocalTTLMinutes   int `yaml:"local_ttl_minutes"`   // in-process tier, default 60
	RedisTTLMinutes   int `yaml:"redis_ttl_minutes"`   // distributed tier, default 5
	CallTimeoutMillis int `yaml:"call_timeout_millis"` // per redis call, default 500
}

// HolidayAPIConfig contains the external public-holiday provider settings
type HolidayAPIConfig struct {
	BaseURL        string   `yaml:"base_url"`
	CountryCode    string   `yaml:"country_code"`
	HolidayNames   []string `yaml:"holiday_names"` // allow-list of observed holidays
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// SchedulerConfig contains cron specs for background jobs
type SchedulerConfig struct {
	PrewarmHolidays string `yaml:"prewarm_holidays"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
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
	// Database
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

	// Redis
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Redis.Addr = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Redis.Password = val
	}
	if val := os.Getenv("REDIS_DB"); val != "" {
		fmt.Sscanf(val, "%d", &c.Redis.DB)
	}

	// Holiday API
	if val := os.Getenv("HOLIDAY_API_BASE_URL"); val != "" {
		c.HolidayAPI.BaseURL = val
	}
	if val := os.Getenv("HOLIDAY_API_COUNTRY"); val != "" {
		c.HolidayAPI.CountryCode = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// applyDefaults fills unset values with defaults
func (c *Config) applyDefaults() {
	if c.Database.QueryTimeoutMillis <= 0 {
		c.Database.QueryTimeoutMillis = 2000
	}
	if c.Cache.LocalTTLMinutes <= 0 {
		c.Cache.LocalTTLMinutes = 60
	}
	if c.Cache.RedisTTLMinutes <= 0 {
		c.Cache.RedisTTLMinutes = 5
	}
	if c.Cache.CallTimeoutMillis <= 0 {
		c.Cache.CallTimeoutMillis = 500
	}
	if c.HolidayAPI.BaseURL == "" {
		c.HolidayAPI.BaseURL = "https://date.nager.at/api/v3/PublicHolidays"
	}
	if c.HolidayAPI.CountryCode == "" {
		c.HolidayAPI.CountryCode = "US"
	}
	if len(c.HolidayAPI.HolidayNames) == 0 {
		c.HolidayAPI.HolidayNames = []string{"Independence Day", "Labour Day"}
	}
	if c.HolidayAPI.TimeoutSeconds <= 0 {
		c.HolidayAPI.TimeoutSeconds = 10
	}
	if c.Scheduler.PrewarmHolidays == "" {
		// 03:10 UTC daily
		c.Scheduler.PrewarmHolidays = "0 10 3 * * *"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks that required configuration values are present
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database port is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}
	return nil
}

// GetDatabaseConnectionString returns the PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Database, sslMode)
}

// GetServerAddress returns the host:port address for the HTTP server
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// QueryTimeout returns the per-call timeout for durable store queries
func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.Database.QueryTimeoutMillis) * time.Millisecond
}

// LocalTTL returns the in-process cache eviction time
func (c *Config) LocalTTL() time.Duration {
	return time.Duration(c.Cache.LocalTTLMinutes) * time.Minute
}

// RedisTTL returns the distributed cache entry lifetime
func (c *Config) RedisTTL() time.Duration {
	return time.Duration(c.Cache.RedisTTLMinutes) * time.Minute
}

// CacheCallTimeout returns the per-call timeout for distributed cache access
func (c *Config) CacheCallTimeout() time.Duration {
	return time.Duration(c.Cache.CallTimeoutMillis) * time.Millisecond
}
