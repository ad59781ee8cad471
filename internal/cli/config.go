package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/numview/numview/pkg/backend"
)

// Config is the optional user configuration file.
//
//	server = "http://127.0.0.1:5000"
//	timeout = "30s"
type Config struct {
	Server  string        `toml:"server"`
	Timeout time.Duration `toml:"timeout"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{Server: backend.DefaultServer, Timeout: backend.DefaultTimeout}
}

// ReadConfig decodes the config file at path on top of the defaults.
// A missing file is not an error unless required is set.
func ReadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Timeout < 0 {
		return cfg, fmt.Errorf("config %s: timeout must not be negative", path)
	}
	return cfg, nil
}

// loadConfig reads the config file and applies explicitly set flags on top.
func (c *CLI) loadConfig(cmd *cobra.Command) (Config, error) {
	path, required := c.configPath, true
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path, required = filepath.Join(dir, "config.toml"), false
	}

	cfg, err := ReadConfig(path, required)
	if err != nil {
		return cfg, err
	}
	c.Logger.Debug("config loaded", "path", path, "server", cfg.Server, "timeout", cfg.Timeout)

	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.Server = c.server
	}
	if flags.Changed("timeout") {
		cfg.Timeout = c.timeout
	}
	return cfg, nil
}

// configDir returns the config directory using XDG standard (~/.config/numview/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
