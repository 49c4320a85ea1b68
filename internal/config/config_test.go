package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test in an empty directory so no fridgemate.yaml is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("FRIDGEMATE_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50052, cfg.Server.Port)
	assert.Equal(t, ":50052", cfg.Address())
	assert.Equal(t, "./data/fridgemate", cfg.Database.Path)
	assert.Equal(t, "bolt", cfg.Database.Type)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 5, cfg.View.PageSize)
	assert.Equal(t, time.Hour, cfg.Notifications.ScanInterval)
	assert.Equal(t, 168*time.Hour, cfg.Notifications.Retention)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := chdirTemp(t)

	path := filepath.Join(dir, "custom.yaml")
	content := `
server:
  port: 6000
database:
  type: badger
  path: /var/lib/fridgemate
notifications:
  scan_interval: 15m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("FRIDGEMATE_CONFIG", path)
	t.Setenv("FRIDGEMATE_LOG_LEVEL", "debug")
	t.Setenv("FRIDGEMATE_VIEW_PAGE_SIZE", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.Server.Port)
	assert.Equal(t, "badger", cfg.Database.Type)
	assert.Equal(t, "/var/lib/fridgemate", cfg.Database.Path)
	assert.Equal(t, 15*time.Minute, cfg.Notifications.ScanInterval)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 10, cfg.View.PageSize)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("FRIDGEMATE_CONFIG", filepath.Join(dir, "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadWorkingDirectoryFile(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("FRIDGEMATE_CONFIG", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fridgemate.yaml"), []byte("log:\n  format: text\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Server:        ServerConfig{Port: 50052},
		Database:      DatabaseConfig{Path: "./data", Type: "bolt"},
		View:          ViewConfig{PageSize: 5},
		Notifications: NotificationConfig{ScanInterval: time.Hour, Retention: time.Hour},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, true},
		{"empty path", func(c *Config) { c.Database.Path = " " }, true},
		{"unknown backend", func(c *Config) { c.Database.Type = "postgres" }, true},
		{"zero page size", func(c *Config) { c.View.PageSize = 0 }, true},
		{"zero interval", func(c *Config) { c.Notifications.ScanInterval = 0 }, true},
		{"negative retention", func(c *Config) { c.Notifications.Retention = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
