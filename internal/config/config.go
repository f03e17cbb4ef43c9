// ABOUTME: Vitals configuration management.
// ABOUTME: Handles settings, logging level, and storage/notifier factory functions.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/vitals/internal/notify"
	"github.com/harperreed/vitals/internal/storage"
)

// EnvAMQPURL overrides the configured broker URL when set.
const EnvAMQPURL = "VITALS_AMQP_URL"

// Config stores vitals tool configuration.
type Config struct {
	// DataDir is the root directory for data storage; vitals.db lives here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/vitals.
	DataDir string `json:"data_dir,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to info.
	LogLevel string `json:"log_level,omitempty"`

	// AMQPURL enables alert publishing when non-empty.
	AMQPURL string `json:"amqp_url,omitempty"`

	// AMQPQueue is the queue alerts are published to.
	AMQPQueue string `json:"amqp_queue,omitempty"`

	// ReportKeep is how many analyzed reports to retain. Zero means the
	// default of 6; a negative value keeps every report.
	ReportKeep int `json:"report_keep,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetDBPath returns the SQLite database path inside the data directory.
func (c *Config) GetDBPath() string {
	return filepath.Join(c.GetDataDir(), storage.DBFileName)
}

// GetLogLevel returns the configured level, falling back to info when
// unset or unrecognized.
func (c *Config) GetLogLevel() log.Level {
	if c.LogLevel == "" {
		return log.InfoLevel
	}
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// GetAMQPURL returns the broker URL, preferring the environment.
func (c *Config) GetAMQPURL() string {
	if url := os.Getenv(EnvAMQPURL); url != "" {
		return url
	}
	return c.AMQPURL
}

// GetAMQPQueue returns the alert queue name.
func (c *Config) GetAMQPQueue() string {
	if c.AMQPQueue == "" {
		return notify.DefaultQueue
	}
	return c.AMQPQueue
}

// GetReportKeep returns the report retention count, 0 when pruning is off.
func (c *Config) GetReportKeep() int {
	switch {
	case c.ReportKeep == 0:
		return storage.DefaultReportKeep
	case c.ReportKeep < 0:
		return 0
	}
	return c.ReportKeep
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite repository in the configured data directory.
func (c *Config) OpenStorage() (storage.Repository, error) {
	db, err := storage.Open(c.GetDBPath())
	if err != nil {
		return nil, err
	}
	return db, nil
}

// OpenPublisher connects the alert publisher, or returns a no-op notifier
// when no broker is configured.
func (c *Config) OpenPublisher(logger *log.Logger) (notify.Notifier, error) {
	url := c.GetAMQPURL()
	if url == "" {
		return notify.Nop{}, nil
	}
	return notify.Dial(url, c.GetAMQPQueue(), logger)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "vitals", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
