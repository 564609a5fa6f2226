package cli

import (
	"context"

	"github.com/statix-dev/precompress/internal/adapter"
	"github.com/statix-dev/precompress/internal/domain"
)

// FindOrphansCmd lists compressed artifacts whose source file is gone,
// without deleting anything.
type FindOrphansCmd struct {
	Directory      string `arg:"" type:"existingdir" help:"Directory containing the static site."`
	Codec          string `help:"Codec whose suffix to scan for: gzip, zstd or brotli."`
	ExtensionsFile string `name:"extensions-file" type:"existingfile" help:"File with one source extension per line, overriding the built-in list."`
}

// Run executes the find-orphans command.
func (c *FindOrphansCmd) Run(logger *Logger) error {
	return c.run(context.Background(), logger)
}

func (c *FindOrphansCmd) run(ctx context.Context, logger *Logger) error {
	config, err := loadConfig(c.Directory, logger)
	if err != nil {
		return err
	}
	if c.Codec != "" {
		config.Codec = c.Codec
	}
	if err := config.Validate(); err != nil {
		logger.Error("Invalid options: %v", err)
		return err
	}

	codecName := config.Codec
	if codecName == "" {
		codecName = "gzip"
	}
	codec, err := adapter.CodecByName(codecName)
	if err != nil {
		logger.Error("Unknown codec: %v", err)
		return err
	}

	extensions := config.Extensions
	if c.ExtensionsFile != "" {
		extensions, err = adapter.ReadExtensionsFile(c.ExtensionsFile)
		if err != nil {
			logger.Error("%v", err)
			return err
		}
	}
	if len(extensions) == 0 {
		extensions = adapter.DefaultExtensions()
	}

	suffix := config.Suffix
	if suffix == "" {
		suffix = codec.Suffix()
	}

	scanner := domain.NewOrphanScanner(adapter.NewTreeWalker(extensions, suffix))
	if err := scanner.FindOrphans(ctx, c.Directory, func(artifactPath string) error {
		logger.Info("%s", artifactPath)
		return nil
	}); err != nil {
		logger.Error("Failed to scan %s: %v", c.Directory, err)
		return err
	}
	return nil
}
