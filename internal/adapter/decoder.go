package adapter

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/statix-dev/precompress/internal/domain"
	"github.com/statix-dev/precompress/internal/port"
)

// decoderInputBufferSize is the fixed size of the compressed-side input
// buffer. Peak memory while decoding is a function of this constant and the
// codec's own window, never of the artifact's decompressed size or its
// compression ratio.
const decoderInputBufferSize = 32 * 1024

// StreamDecoder reads the decompressed bytes of one compressed artifact
// through a fixed-size input buffer. It is a single cohesive state machine:
// the open file, the buffered compressed-side reader, and the codec's
// decompression state live and die together.
//
// A StreamDecoder is not restartable; to read the artifact again, open a
// new one.
type StreamDecoder struct {
	file *os.File
	dec  io.ReadCloser
}

// NewStreamDecoder opens the artifact at path for streaming decompression
// with the given codec. A missing file is returned as-is (callers check
// fs.ErrNotExist); a stream whose header cannot be parsed is returned
// wrapped in domain.ErrArtifactCorrupt.
func NewStreamDecoder(path string, codec port.Codec) (*StreamDecoder, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	dec, err := codec.NewReader(bufio.NewReaderSize(file, decoderInputBufferSize))
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrArtifactCorrupt, path, err)
	}

	return &StreamDecoder{file: file, dec: dec}, nil
}

// Read fills p with up to len(p) decompressed bytes. Truncation and
// container-internal checksum failures surface here as errors other than
// io.EOF.
func (d *StreamDecoder) Read(p []byte) (int, error) {
	return d.dec.Read(p)
}

// Close releases the decoder state and the underlying file. It is safe to
// call after a failed Read.
func (d *StreamDecoder) Close() error {
	err := d.dec.Close()
	if cerr := d.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// DecoderOpener is the port.ArtifactOpener implementation backed by
// StreamDecoder.
type DecoderOpener struct {
	codec port.Codec
}

// NewDecoderOpener creates an opener producing stream decoders for codec.
func NewDecoderOpener(codec port.Codec) *DecoderOpener {
	return &DecoderOpener{codec: codec}
}

// OpenArtifact opens path as a decompressed byte stream.
func (o *DecoderOpener) OpenArtifact(path string) (io.ReadCloser, error) {
	return NewStreamDecoder(path, o.codec)
}
