package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the assistant service
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Knowledge KnowledgeConfig `mapstructure:"knowledge"`
	Session   SessionConfig   `mapstructure:"session"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
	BaseURL      string   `mapstructure:"base_url"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// AdminConfig holds admin authentication configuration
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	JWTKey   string `mapstructure:"jwt_key"`
}

// DatabaseConfig holds storage configuration. Driver "sqlite" persists
// feedback, analytics and admin sessions under Path; "memory" keeps
// everything process-local and loses it on restart.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// KnowledgeConfig holds the FAQ knowledge-base source. An empty path uses
// the embedded default data set.
type KnowledgeConfig struct {
	Path string `mapstructure:"path"`
}

// SessionConfig holds admin session timing
type SessionConfig struct {
	Timeout          time.Duration `mapstructure:"timeout"`
	WarningWindow    time.Duration `mapstructure:"warning_window"`
	ActivityDebounce time.Duration `mapstructure:"activity_debounce"`
	CookieMaxAge     time.Duration `mapstructure:"cookie_max_age"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("AFU")
	v.AutomaticEnv()

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.allow_origins", []string{"*"})

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin123")
	v.SetDefault("admin.jwt_key", "afu-assistant-dev-key")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/afu.db")

	v.SetDefault("knowledge.path", "")

	v.SetDefault("session.timeout", 30*time.Minute)
	v.SetDefault("session.warning_window", 5*time.Minute)
	v.SetDefault("session.activity_debounce", 5*time.Minute)
	v.SetDefault("session.cookie_max_age", 24*time.Hour)
}

// Address returns the server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
