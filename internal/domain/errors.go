package domain

import "errors"

// Sentinel errors for domain-level error identification.
// These errors provide a standard way to identify and report error
// conditions across the application.
var (
	// ErrConfigNotFound indicates that the configuration file was not found.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrConfigExists indicates that a configuration file already exists.
	ErrConfigExists = errors.New("configuration file already exists")

	// ErrArtifactCorrupt indicates that a compressed artifact could not be
	// decoded: malformed header, truncated stream, or an internal checksum
	// failure of the container format itself.
	ErrArtifactCorrupt = errors.New("artifact is corrupt")

	// ErrChecksumUnavailable indicates that no checksum implementation from
	// the preference list is usable. Fatal at startup.
	ErrChecksumUnavailable = errors.New("no checksum implementation available")

	// ErrUnknownChecksum indicates that an unrecognized checksum kind was
	// requested.
	ErrUnknownChecksum = errors.New("unknown checksum kind")

	// ErrUnknownCodec indicates that an unrecognized codec name was
	// requested.
	ErrUnknownCodec = errors.New("unknown codec")

	// ErrInvalidLevel indicates a compression level outside the chosen
	// codec's supported range.
	ErrInvalidLevel = errors.New("invalid compression level")

	// ErrInvalidConfig indicates that a configuration file has invalid
	// field values.
	ErrInvalidConfig = errors.New("invalid configuration")
)
