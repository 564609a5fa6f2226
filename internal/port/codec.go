// Package port defines the abstraction interfaces between the domain logic
// and the concrete adapters (compression codecs, filesystem walkers,
// attribute propagation).
package port

import "io"

// Codec is the abstraction interface for a compressed container format.
// A codec produces a compressed byte stream from bytes and reads one back.
// The domain never touches a compression algorithm directly; it only asks a
// codec for streaming writers and readers.
type Codec interface {
	// Name returns the codec identifier used in configuration and flags
	// (e.g. "gzip", "zstd", "brotli").
	Name() string

	// Suffix returns the artifact filename suffix including the leading
	// dot (e.g. ".gz"). An artifact path is always the source path with
	// this suffix appended.
	Suffix() string

	// NewWriter returns a streaming compressor writing to w at the given
	// level. The returned writer must be closed to flush the container
	// trailer. Levels outside the codec's supported range are an error.
	NewWriter(w io.Writer, level int) (io.WriteCloser, error)

	// NewReader returns a streaming decompressor reading from r. The
	// reader yields the decompressed bytes of the first logical member of
	// the stream; trailing bytes after that member are ignored, matching
	// the container formats' concatenation allowance. A malformed header
	// is reported on construction or on first read, never as a panic.
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// ArtifactOpener opens a compressed artifact for streaming decompressed
// reads. Implementations bound their working memory by a fixed-size input
// buffer, independent of the artifact's decompressed size.
type ArtifactOpener interface {
	// OpenArtifact opens the artifact at path and returns a reader over
	// its decompressed bytes. The caller must close the reader on every
	// exit path, including early aborts.
	OpenArtifact(path string) (io.ReadCloser, error)
}
