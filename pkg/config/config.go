// Package config loads the netrecon tool configuration from netrecon.yml,
// the NETRECON_* environment and command-line flags bridged through viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/metalkit/netrecon/pkg/defaults"
	"github.com/metalkit/netrecon/pkg/nicview"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// HardwareConfig describes how to reach the hardware-management endpoint.
type HardwareConfig struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
	Insecure bool   `mapstructure:"insecure" yaml:"insecure"`
	Timeout  string `mapstructure:"timeout" yaml:"timeout"`
	Retries  int    `mapstructure:"retries" yaml:"retries"`
}

// ServerConfig describes the HTTP API listener.
type ServerConfig struct {
	Address string `mapstructure:"address" yaml:"address"`
	Port    int    `mapstructure:"port" yaml:"port"`
}

// NetreconConfig is the full tool configuration.
type NetreconConfig struct {
	LogLevel string                    `mapstructure:"log-level" yaml:"log-level"`
	Hardware HardwareConfig            `mapstructure:"hardware" yaml:"hardware"`
	Server   ServerConfig              `mapstructure:"server" yaml:"server"`
	Shapes   map[string]nicview.Policy `mapstructure:"shapes" yaml:"shapes,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *NetreconConfig {
	return &NetreconConfig{
		LogLevel: log.InfoLevel.String(),
		Hardware: HardwareConfig{
			Timeout: defaults.DefaultHardwareTimeout.String(),
			Retries: defaults.DefaultHardwareRetries,
		},
		Server: ServerConfig{
			Address: defaults.DefaultServerAddress,
			Port:    defaults.DefaultServerPort,
		},
	}
}

// DefaultConfigPath returns the config file inside the current directory if
// present, otherwise the one inside the home directory.
func DefaultConfigPath() (string, error) {
	if _, err := os.Stat(defaults.DefaultCurrentDirConfig); err == nil {
		return defaults.DefaultCurrentDirConfig, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot detect home directory: %w", err)
	}
	return filepath.Join(home, defaults.DefaultNetreconHomeDir, defaults.DefaultCurrentDirConfig), nil
}

// Load reads the configuration from the given file (or the default location
// when empty), applies environment overrides and registers shape-policy
// overrides. A missing file yields the defaults, not an error.
func Load(configFile string) (*NetreconConfig, error) {
	if configFile == "" {
		var err error
		configFile, err = DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	viper.SetConfigFile(configFile)
	viper.SetEnvPrefix(defaults.DefaultConfigEnvPrefix)
	viper.AutomaticEnv()

	cfg := Default()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading config %s: %w", configFile, err)
		}
		log.Debugf("no config file at %s, using defaults", configFile)
	} else if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config %s: %w", configFile, err)
	}
	for shape, policy := range cfg.Shapes {
		nicview.RegisterPolicy(shape, policy)
	}
	return cfg, nil
}

// Write serializes the configuration to the given path, creating parent
// directories as needed.
func Write(cfg *NetreconConfig, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
