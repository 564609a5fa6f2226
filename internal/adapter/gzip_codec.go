// Package adapter provides the concrete implementations of the port
// interfaces: compression codecs, the streaming artifact decoder, the
// directory walker, and filesystem attribute propagation.
package adapter

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/statix-dev/precompress/internal/domain"
)

// GzipCodec is the default codec. It writes single-member gzip streams and
// is always available; web servers with gzip_static support serve its
// output directly.
type GzipCodec struct{}

// NewGzipCodec creates a new GzipCodec instance.
func NewGzipCodec() *GzipCodec {
	return &GzipCodec{}
}

// Name returns "gzip".
func (*GzipCodec) Name() string { return "gzip" }

// Suffix returns ".gz".
func (*GzipCodec) Suffix() string { return ".gz" }

// DefaultLevel returns the default gzip compression level. Level 9 trades
// CPU for ratio, the right default for compress-once serve-many artifacts.
func (*GzipCodec) DefaultLevel() int { return gzip.BestCompression }

// NewWriter returns a streaming gzip compressor at the given level (1-9).
func (*GzipCodec) NewWriter(w io.Writer, level int) (io.WriteCloser, error) {
	if level < gzip.BestSpeed || level > gzip.BestCompression {
		return nil, fmt.Errorf("%w: gzip level %d, want 1-9", domain.ErrInvalidLevel, level)
	}
	zw, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return nil, fmt.Errorf("gzip writer: %w", err)
	}
	return zw, nil
}

// NewReader returns a streaming gzip decompressor. Multistream mode is
// disabled: the reader stops at the end of the first member and ignores any
// trailing bytes, since the format permits concatenated members even though
// this tool's writer never produces more than one.
func (*GzipCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	zr.Multistream(false)
	return zr, nil
}
