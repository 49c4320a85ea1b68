package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/DaDevFox/fridgemate/internal/repository"
)

// Config holds the server configuration.
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Log           LogConfig
	View          ViewConfig
	Notifications NotificationConfig
}

// ServerConfig holds gRPC listener settings.
type ServerConfig struct {
	Port int
}

// DatabaseConfig selects the storage backend.
type DatabaseConfig struct {
	Path string
	Type string
}

// LogConfig holds logrus settings.
type LogConfig struct {
	Level  string
	Format string
}

// ViewConfig holds defaults of the inventory view.
type ViewConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// NotificationConfig controls the background notification loop.
type NotificationConfig struct {
	ScanInterval time.Duration `mapstructure:"scan_interval"`
	Retention    time.Duration
}

// Address is the listen address of the gRPC server.
func (c Config) Address() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// Load reads configuration from file and env. Env var overrides use prefix
// FRIDGEMATE_, e.g. FRIDGEMATE_DATABASE_TYPE=badger.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("server.port", 50052)
	v.SetDefault("database.path", "./data/fridgemate")
	v.SetDefault("database.type", string(repository.DatabaseTypeBolt))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("view.page_size", 5)
	v.SetDefault("notifications.scan_interval", time.Hour)
	v.SetDefault("notifications.retention", 7*24*time.Hour)

	v.SetConfigType("yaml")

	cfgPath := os.Getenv("FRIDGEMATE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("fridgemate")
	}

	v.SetEnvPrefix("FRIDGEMATE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicitly named file must exist.
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path must not be empty")
	}
	if _, err := repository.ParseDatabaseType(c.Database.Type); err != nil {
		return err
	}
	if c.View.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.View.PageSize)
	}
	if c.Notifications.ScanInterval <= 0 {
		return fmt.Errorf("notification scan interval must be positive, got %s", c.Notifications.ScanInterval)
	}
	if c.Notifications.Retention <= 0 {
		return fmt.Errorf("notification retention must be positive, got %s", c.Notifications.Retention)
	}
	return nil
}
