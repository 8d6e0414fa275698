// Package config provides configuration loading, defaults, and validation.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Google GoogleConfig `mapstructure:"google"`
}

type ServerConfig struct {
	Host                     string `mapstructure:"host"`
	Port                     int    `mapstructure:"port"`
	Mode                     string `mapstructure:"mode"` // gin mode: debug | release | test
	ReadHeaderTimeoutSeconds int    `mapstructure:"read_header_timeout"`
	IdleTimeoutSeconds       int    `mapstructure:"idle_timeout"`
}

type LogConfig struct {
	Level           string            `mapstructure:"level"`
	Format          string            `mapstructure:"format"`
	ServiceName     string            `mapstructure:"service_name"`
	Environment     string            `mapstructure:"env"`
	Caller          bool              `mapstructure:"caller"`
	StacktraceLevel string            `mapstructure:"stacktrace_level"`
	Output          LogOutputConfig   `mapstructure:"output"`
	Rotation        LogRotationConfig `mapstructure:"rotation"`
}

type LogOutputConfig struct {
	ToStdout bool   `mapstructure:"to_stdout"`
	ToFile   bool   `mapstructure:"to_file"`
	FilePath string `mapstructure:"file_path"`
}

type LogRotationConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
	Compress   bool `mapstructure:"compress"`
	LocalTime  bool `mapstructure:"local_time"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// Connection pool and timeout tuning; zero values use client defaults.
	DialTimeoutSeconds  int `mapstructure:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds"`
	PoolSize            int `mapstructure:"pool_size"`
}

// GoogleConfig carries the credential material and endpoint overrides for the
// OAuth, Play Billing, and FCM integrations.
type GoogleConfig struct {
	// ClientFile points to the OAuth client descriptor JSON downloaded from
	// the Google console ({"web":{"client_id":...,"client_secret":...}}).
	ClientFile string `mapstructure:"client_file"`
	// BootstrapTokenFile points to the token-exchange response captured when
	// the refresh token was first granted ({"refresh_token":...}).
	BootstrapTokenFile string `mapstructure:"bootstrap_token_file"`

	TokenURL string `mapstructure:"token_url"`
	// PublisherBaseURL is the Android Publisher API base. Overridable so the
	// acknowledge call can be routed through a regional egress proxy.
	PublisherBaseURL string `mapstructure:"publisher_base_url"`
	FCMBaseURL       string `mapstructure:"fcm_base_url"`
	IIDBaseURL       string `mapstructure:"iid_base_url"`

	FCMServerKey      string `mapstructure:"fcm_server_key"`
	FirebaseProjectID string `mapstructure:"firebase_project_id"`

	// TokenTTLMarginSeconds is subtracted from expires_in when computing the
	// cache TTL, so entries vanish before the token actually expires.
	TokenTTLMarginSeconds int `mapstructure:"token_ttl_margin_seconds"`
}

// TokenTTLMargin returns the cache TTL safety margin as a duration.
func (g GoogleConfig) TokenTTLMargin() time.Duration {
	return time.Duration(g.TokenTTLMarginSeconds) * time.Second
}

// Load reads and validates the full configuration.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Config paths in priority order.
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		viper.AddConfigPath(dataDir)
	}
	viper.AddConfigPath("/app/data")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/iapush")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config error: %w", err)
		}
		// Missing config file falls back to defaults + env.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config error: %w", err)
	}

	cfg.Server.Mode = strings.ToLower(strings.TrimSpace(cfg.Server.Mode))
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "debug"
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	cfg.Log.ServiceName = strings.TrimSpace(cfg.Log.ServiceName)
	cfg.Log.Environment = strings.TrimSpace(cfg.Log.Environment)
	cfg.Log.StacktraceLevel = strings.ToLower(strings.TrimSpace(cfg.Log.StacktraceLevel))
	cfg.Log.Output.FilePath = strings.TrimSpace(cfg.Log.Output.FilePath)
	cfg.Google.ClientFile = strings.TrimSpace(cfg.Google.ClientFile)
	cfg.Google.BootstrapTokenFile = strings.TrimSpace(cfg.Google.BootstrapTokenFile)
	cfg.Google.TokenURL = strings.TrimSpace(cfg.Google.TokenURL)
	cfg.Google.PublisherBaseURL = strings.TrimRight(strings.TrimSpace(cfg.Google.PublisherBaseURL), "/")
	cfg.Google.FCMBaseURL = strings.TrimRight(strings.TrimSpace(cfg.Google.FCMBaseURL), "/")
	cfg.Google.IIDBaseURL = strings.TrimRight(strings.TrimSpace(cfg.Google.IIDBaseURL), "/")
	cfg.Google.FCMServerKey = strings.TrimSpace(cfg.Google.FCMServerKey)
	cfg.Google.FirebaseProjectID = strings.TrimSpace(cfg.Google.FirebaseProjectID)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config error: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_header_timeout", 30)
	viper.SetDefault("server.idle_timeout", 120)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.service_name", "iapush")
	viper.SetDefault("log.env", "production")
	viper.SetDefault("log.caller", true)
	viper.SetDefault("log.stacktrace_level", "error")
	viper.SetDefault("log.output.to_stdout", true)
	viper.SetDefault("log.output.to_file", false)
	viper.SetDefault("log.output.file_path", "")
	viper.SetDefault("log.rotation.max_size_mb", 100)
	viper.SetDefault("log.rotation.max_backups", 10)
	viper.SetDefault("log.rotation.max_age_days", 7)
	viper.SetDefault("log.rotation.compress", true)
	viper.SetDefault("log.rotation.local_time", true)

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.dial_timeout_seconds", 5)
	viper.SetDefault("redis.read_timeout_seconds", 3)
	viper.SetDefault("redis.write_timeout_seconds", 3)
	viper.SetDefault("redis.pool_size", 10)

	viper.SetDefault("google.token_url", "https://accounts.google.com/o/oauth2/token")
	viper.SetDefault("google.publisher_base_url", "https://www.googleapis.com")
	viper.SetDefault("google.fcm_base_url", "https://fcm.googleapis.com")
	viper.SetDefault("google.iid_base_url", "https://iid.googleapis.com")
	viper.SetDefault("google.token_ttl_margin_seconds", 60)
}

// Validate checks cross-field consistency. Credential file contents are
// validated later when ClientCredentials is constructed.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode invalid: %s", c.Server.Mode)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level invalid: %s", c.Log.Level)
	}
	switch c.Log.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("log.format invalid: %s", c.Log.Format)
	}
	if c.Google.ClientFile == "" {
		return fmt.Errorf("google.client_file is required")
	}
	if c.Google.BootstrapTokenFile == "" {
		return fmt.Errorf("google.bootstrap_token_file is required")
	}
	if c.Google.FirebaseProjectID == "" {
		return fmt.Errorf("google.firebase_project_id is required")
	}
	if c.Google.FCMServerKey == "" {
		return fmt.Errorf("google.fcm_server_key is required")
	}
	if c.Google.TokenTTLMarginSeconds < 0 {
		return fmt.Errorf("google.token_ttl_margin_seconds must not be negative")
	}
	return nil
}
