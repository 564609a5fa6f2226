package adapter

import (
	"fmt"
	"io"

	"github.com/andybalholm/brotli"

	"github.com/statix-dev/precompress/internal/domain"
)

// BrotliCodec writes brotli streams (".br"). It is the slow, high-ratio
// backend: opt-in only, aimed at web servers with brotli_static support.
// Compression level 11 on the gzip command line is an explicit alias for
// this codec.
type BrotliCodec struct{}

// NewBrotliCodec creates a new BrotliCodec instance.
func NewBrotliCodec() *BrotliCodec {
	return &BrotliCodec{}
}

// Name returns "brotli".
func (*BrotliCodec) Name() string { return "brotli" }

// Suffix returns ".br".
func (*BrotliCodec) Suffix() string { return ".br" }

// DefaultLevel returns the default brotli quality (11, maximum).
func (*BrotliCodec) DefaultLevel() int { return brotli.BestCompression }

// NewWriter returns a streaming brotli compressor at the given quality
// (0-11).
func (*BrotliCodec) NewWriter(w io.Writer, level int) (io.WriteCloser, error) {
	if level < brotli.BestSpeed || level > brotli.BestCompression {
		return nil, fmt.Errorf("%w: brotli quality %d, want 0-11", domain.ErrInvalidLevel, level)
	}
	return brotli.NewWriterLevel(w, level), nil
}

// NewReader returns a streaming brotli decompressor. Brotli readers hold no
// resources beyond their buffers, so Close is a no-op.
func (*BrotliCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(brotli.NewReader(r)), nil
}
