package domain

import (
	"fmt"
	"strings"
)

// Config represents the optional .precompress.toml configuration placed at
// the root of a static site. Command-line flags override any value set
// here; a missing file means all defaults.
type Config struct {
	// Extensions is the allow-list of source file extensions, each with
	// its leading dot. Empty means the built-in default list.
	Extensions []string `toml:"extensions,omitempty"`

	// Codec names the compression backend: "gzip" (default), "zstd" or
	// "brotli". Non-default codecs are only ever used when named
	// explicitly, here or on the command line.
	Codec string `toml:"codec,omitempty"`

	// Level is the compression level on the codec's own scale. Zero
	// means the codec's default.
	Level int `toml:"level,omitempty"`

	// Checksum names the checksum kind, or "auto" (default) for the
	// fastest available one.
	Checksum string `toml:"checksum,omitempty"`

	// Suffix overrides the codec's artifact suffix. Rarely needed; it
	// must include the leading dot.
	Suffix string `toml:"suffix,omitempty"`

	// Jobs is the worker count. Zero means one worker per CPU.
	Jobs int `toml:"jobs,omitempty"`
}

// DefaultConfig returns the configuration used when no file and no flags
// are given.
func DefaultConfig() *Config {
	return &Config{
		Codec:    "gzip",
		Checksum: "auto",
	}
}

// Validate validates the configuration field values.
func (c *Config) Validate() error {
	switch c.Codec {
	case "", "gzip", "zstd", "brotli":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCodec, c.Codec)
	}

	if c.Checksum != "" && c.Checksum != "auto" {
		if _, err := ParseChecksumKind(c.Checksum); err != nil {
			return err
		}
	}

	if c.Level < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, c.Level)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative, got %d", ErrInvalidConfig, c.Jobs)
	}
	if c.Suffix != "" && !strings.HasPrefix(c.Suffix, ".") {
		return fmt.Errorf("%w: suffix %q must start with a dot", ErrInvalidConfig, c.Suffix)
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: extension %q must start with a dot", ErrInvalidConfig, ext)
		}
	}
	return nil
}

// ChecksumKind resolves the configured checksum name to a kind, running
// auto-selection when the name is "auto" or empty. The resolution happens
// once at startup; the returned kind is then fixed for the whole run.
func (c *Config) ChecksumKind() (ChecksumKind, error) {
	if c.Checksum == "" || c.Checksum == "auto" {
		return SelectChecksum()
	}
	return ParseChecksumKind(c.Checksum)
}
