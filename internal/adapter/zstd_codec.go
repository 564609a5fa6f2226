package adapter

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/statix-dev/precompress/internal/domain"
)

// ZstdCodec writes zstandard frames (".zst"). Opt-in: it is never selected
// unless named explicitly in configuration or on the command line.
type ZstdCodec struct{}

// NewZstdCodec creates a new ZstdCodec instance.
func NewZstdCodec() *ZstdCodec {
	return &ZstdCodec{}
}

// Name returns "zstd".
func (*ZstdCodec) Name() string { return "zstd" }

// Suffix returns ".zst".
func (*ZstdCodec) Suffix() string { return ".zst" }

// DefaultLevel returns the default zstd level (19, the "max" preset of the
// reference implementation short of the ultra levels).
func (*ZstdCodec) DefaultLevel() int { return 19 }

// NewWriter returns a streaming zstd compressor at the given level (1-22,
// the zstd command-line scale). Encoder concurrency is pinned to one: each
// worker owns its writer, and a single goroutine per stream keeps memory
// bounded and predictable.
func (*ZstdCodec) NewWriter(w io.Writer, level int) (io.WriteCloser, error) {
	if level < 1 || level > 22 {
		return nil, fmt.Errorf("%w: zstd level %d, want 1-22", domain.ErrInvalidLevel, level)
	}
	zw, err := zstd.NewWriter(w,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	return zw, nil
}

// NewReader returns a streaming zstd decompressor in low-memory,
// single-goroutine mode.
func (*ZstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := zstd.NewReader(r,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		return nil, err
	}
	return zr.IOReadCloser(), nil
}
