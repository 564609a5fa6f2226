package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"github.com/statix-dev/precompress/internal/adapter"
	"github.com/statix-dev/precompress/internal/domain"
)

// configFileName is the per-tree configuration file looked up at the root
// directory.
const configFileName = ".precompress.toml"

// CompressCmd compresses every eligible static file under a directory,
// skipping files whose compressed companion already matches.
type CompressCmd struct {
	Directory      string `arg:"" type:"existingdir" help:"Directory containing the static site."`
	Codec          string `help:"Compression codec: gzip, zstd or brotli. Default: gzip, or the configured codec."`
	Level          int    `short:"l" help:"Compression level on the codec's scale. With gzip, 11 selects the brotli codec. Default: the codec's own default."`
	Checksum       string `help:"Checksum kind: xxh3-128, blake3, sha256, sha1, crc32, adler32 or auto."`
	ExtensionsFile string `name:"extensions-file" type:"existingfile" help:"File with one source extension per line, overriding the built-in list."`
	Force          bool   `short:"f" help:"Recompress all files regardless of whether content has changed."`
	RemoveOrphans  bool   `name:"remove-orphans" help:"Remove artifacts whose source file is gone."`
	Jobs           int    `short:"j" help:"Number of files processed in parallel. Default: one per CPU."`
}

// Run executes the compress command.
func (c *CompressCmd) Run(logger *Logger) error {
	return c.run(context.Background(), logger)
}

func (c *CompressCmd) run(ctx context.Context, logger *Logger) error {
	config, err := loadConfig(c.Directory, logger)
	if err != nil {
		return err
	}
	c.applyOverrides(config)
	if err := config.Validate(); err != nil {
		logger.Error("Invalid options: %v", err)
		return err
	}

	kind, err := config.ChecksumKind()
	if err != nil {
		logger.Error("Failed to select a checksum: %v", err)
		return err
	}

	codecName := config.Codec
	if codecName == "" {
		codecName = "gzip"
	}
	if codecName == "gzip" && config.Level == 11 {
		// The gzip scale stops at 9; 11 is the traditional "spend more
		// CPU for a smaller file" request, which maps to brotli here.
		logger.Info("Compression level 11 selects the brotli codec")
		codecName = "brotli"
	}

	codec, err := adapter.CodecByName(codecName)
	if err != nil {
		logger.Error("Unknown codec: %v", err)
		return err
	}

	level := config.Level
	if level == 0 {
		level = codec.DefaultLevel()
	}
	probe, err := codec.NewWriter(io.Discard, level)
	if err != nil {
		logger.Error("Invalid compression level: %v", err)
		return err
	}
	probe.Close()

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

	jobs := config.Jobs
	if jobs == 0 {
		jobs = runtime.NumCPU()
	}

	walker := adapter.NewTreeWalker(extensions, suffix)
	verifier := domain.NewVerifier(kind, adapter.NewDecoderOpener(codec))
	orchestrator := domain.NewOrchestrator(domain.Options{
		Kind:   kind,
		Level:  level,
		Suffix: suffix,
		Force:  c.Force,
		Jobs:   jobs,
	}, verifier, codec, walker, adapter.NewFileAttributeCopier())

	logger.Verbose("Using %s checksum, %s level %d, suffix %s, %d worker(s)",
		kind, codec.Name(), level, suffix, jobs)

	summary, err := orchestrator.Run(ctx, c.Directory, func(result *domain.FileResult) {
		switch result.Action {
		case domain.ActionSkipped:
			logger.Verbose("Skip %s: already compressed", result.Source)
		case domain.ActionCreated:
			logger.Verbose("Compressed %s", result.Source)
		case domain.ActionRecompressed:
			if result.Verification != nil && result.Verification.Status == domain.VerificationArtifactCorrupt {
				logger.Error("Corrupt artifact %s: %v; recompressed", result.Artifact, result.Verification.Reason)
			} else {
				logger.Verbose("Recompressed %s", result.Source)
			}
		case domain.ActionFailed:
			logger.Error("Failed %s: %v", result.Source, result.Err)
		}
		if result.AttrErr != nil {
			logger.Error("Failed to copy attributes to %s: %v", result.Artifact, result.AttrErr)
		}
	})
	if err != nil {
		logger.Error("Failed to process %s: %v", c.Directory, err)
		return err
	}

	if c.RemoveOrphans {
		scanner := domain.NewOrphanScanner(walker)
		removed, failed, orphanErr := scanner.RemoveOrphans(ctx, c.Directory, func(result domain.OrphanResult) {
			if result.Err != nil {
				logger.Error("%v", result.Err)
			} else {
				logger.Info("Removed orphaned file %s", result.Artifact)
			}
		})
		summary.OrphansRemoved = removed
		summary.Failed += failed
		if orphanErr != nil {
			logger.Error("Failed to scan for orphans: %v", orphanErr)
			return orphanErr
		}
	}

	if summary.Changed() {
		logger.Info("%s was updated", c.Directory)
	} else {
		logger.Info("%s had no changes", c.Directory)
	}
	logger.Info("Created artifacts: %d", summary.Created)
	logger.Info("Recompressed artifacts: %d", summary.Recompressed)
	logger.Info("Unchanged artifacts: %d", summary.Unchanged)
	logger.Info("Orphans removed: %d", summary.OrphansRemoved)
	logger.Info("Failed: %d", summary.Failed)

	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed", summary.Failed)
	}
	return nil
}

// applyOverrides copies the set command-line flags over the file-derived
// configuration. Flags always win.
func (c *CompressCmd) applyOverrides(config *domain.Config) {
	if c.Codec != "" {
		config.Codec = c.Codec
	}
	if c.Level != 0 {
		config.Level = c.Level
	}
	if c.Checksum != "" {
		config.Checksum = c.Checksum
	}
	if c.Jobs != 0 {
		config.Jobs = c.Jobs
	}
}

// loadConfig loads .precompress.toml from the root directory, falling back
// to defaults when no file exists.
func loadConfig(dir string, logger *Logger) (*domain.Config, error) {
	configPath := filepath.Join(dir, configFileName)
	config, err := domain.NewConfigManager(configPath).Load(context.Background())
	if err != nil {
		if errors.Is(err, domain.ErrConfigNotFound) {
			logger.Verbose("No %s, using defaults", configFileName)
			return domain.DefaultConfig(), nil
		}
		logger.Error("%v", err)
		return nil, err
	}
	logger.Verbose("Loaded configuration from %s", configPath)
	return config, nil
}
