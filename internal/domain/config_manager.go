package domain

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// configFileMode is the permission set for written configuration files.
const configFileMode fs.FileMode = 0o644

// ConfigManager manages reading and writing of the .precompress.toml
// configuration file.
type ConfigManager struct {
	configPath string
}

// NewConfigManager creates a new ConfigManager instance for the given
// configuration file path.
func NewConfigManager(configPath string) *ConfigManager {
	return &ConfigManager{configPath: configPath}
}

// Initialize creates a new configuration file with default values. It
// returns ErrConfigExists if the file already exists.
func (m *ConfigManager) Initialize(ctx context.Context) error {
	if _, err := os.Stat(m.configPath); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, m.configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check configuration file: %w", err)
	}
	return m.Save(ctx, DefaultConfig())
}

// Load reads and validates the configuration file. It returns
// ErrConfigNotFound if the file does not exist; callers treat that as "use
// defaults" or as an error depending on whether the file was asked for
// explicitly.
func (m *ConfigManager) Load(ctx context.Context) (*Config, error) {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, m.configPath)
		}
		return nil, fmt.Errorf("failed to read configuration file %s: %w", m.configPath, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %s: %w", m.configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration file %s: %w", m.configPath, err)
	}
	return &config, nil
}

// Save validates and writes the configuration to the file.
func (m *ConfigManager) Save(ctx context.Context, config *Config) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, configFileMode); err != nil {
		return fmt.Errorf("failed to write configuration file %s: %w", m.configPath, err)
	}
	return nil
}
