package adapter

import (
	"fmt"

	"github.com/statix-dev/precompress/internal/domain"
	"github.com/statix-dev/precompress/internal/port"
)

// LeveledCodec is a port.Codec that also knows its own default compression
// level. All codecs in this package implement it.
type LeveledCodec interface {
	port.Codec
	DefaultLevel() int
}

// CodecByName returns the codec registered under name. The set of codecs is
// fixed at compile time; selection is explicit, never inferred from the
// contents of the tree.
func CodecByName(name string) (LeveledCodec, error) {
	switch name {
	case "gzip":
		return NewGzipCodec(), nil
	case "zstd":
		return NewZstdCodec(), nil
	case "brotli":
		return NewBrotliCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCodec, name)
	}
}

// CodecNames returns the names of all registered codecs.
func CodecNames() []string {
	return []string{"gzip", "zstd", "brotli"}
}
