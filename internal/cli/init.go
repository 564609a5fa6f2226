package cli

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/statix-dev/precompress/internal/domain"
)

// InitCmd writes a starter .precompress.toml into a directory.
type InitCmd struct {
	Directory string `arg:"" type:"existingdir" help:"Directory to place the configuration file in."`
}

// Run executes the init command.
func (c *InitCmd) Run(logger *Logger) error {
	return c.run(context.Background(), logger)
}

func (c *InitCmd) run(ctx context.Context, logger *Logger) error {
	configPath := filepath.Join(c.Directory, configFileName)
	if err := domain.NewConfigManager(configPath).Initialize(ctx); err != nil {
		if errors.Is(err, domain.ErrConfigExists) {
			logger.Error("Configuration file already exists at %s", configPath)
		} else {
			logger.Error("Failed to create configuration file: %v", err)
		}
		return err
	}
	logger.Info("Created %s", configPath)
	return nil
}
