package adapter

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/statix-dev/precompress/internal/domain"
)

var decoderTestData = []byte("This is a test string with some compressable data.")

// writeGzipArtifact compresses data into a file with the gzip codec.
func writeGzipArtifact(t *testing.T, path string, data []byte) {
	t.Helper()
	codec := NewGzipCodec()
	var buf bytes.Buffer
	w, err := codec.NewWriter(&buf, codec.DefaultLevel())
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestStreamDecoder_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html.gz")
	writeGzipArtifact(t, path, decoderTestData)

	decoder, err := NewStreamDecoder(path, NewGzipCodec())
	if err != nil {
		t.Fatalf("NewStreamDecoder() error: %v", err)
	}
	defer decoder.Close()

	got, err := io.ReadAll(decoder)
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if !bytes.Equal(got, decoderTestData) {
		t.Errorf("decoded %q, want %q", got, decoderTestData)
	}
}

func TestStreamDecoder_TrailingGarbageIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html.gz")
	writeGzipArtifact(t, path, decoderTestData)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("failed to open artifact: %v", err)
	}
	if _, err := file.Write([]byte("junk after the gzip member")); err != nil {
		t.Fatalf("failed to append: %v", err)
	}
	file.Close()

	decoder, err := NewStreamDecoder(path, NewGzipCodec())
	if err != nil {
		t.Fatalf("NewStreamDecoder() error: %v", err)
	}
	defer decoder.Close()

	got, err := io.ReadAll(decoder)
	if err != nil {
		t.Fatalf("ReadAll() error: %v (trailing bytes must be ignored)", err)
	}
	if !bytes.Equal(got, decoderTestData) {
		t.Errorf("decoded %q, want %q", got, decoderTestData)
	}
}

func TestStreamDecoder_CorruptHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html.gz")
	if err := os.WriteFile(path, []byte("definitely not gzip"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := NewStreamDecoder(path, NewGzipCodec())
	if !errors.Is(err, domain.ErrArtifactCorrupt) {
		t.Errorf("NewStreamDecoder() error = %v, want %v", err, domain.ErrArtifactCorrupt)
	}
}

func TestStreamDecoder_TruncatedStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html.gz")
	writeGzipArtifact(t, path, decoderTestData)

	full, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read artifact: %v", err)
	}
	if err := os.WriteFile(path, full[:len(full)/2], 0o644); err != nil {
		t.Fatalf("failed to truncate artifact: %v", err)
	}

	decoder, err := NewStreamDecoder(path, NewGzipCodec())
	if err != nil {
		t.Fatalf("NewStreamDecoder() error: %v", err)
	}
	defer decoder.Close()

	if _, err := io.ReadAll(decoder); err == nil {
		t.Error("reading a truncated stream should fail")
	}
}

func TestStreamDecoder_MissingFile(t *testing.T) {
	_, err := NewStreamDecoder(filepath.Join(t.TempDir(), "nope.gz"), NewGzipCodec())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("NewStreamDecoder() error = %v, want %v", err, fs.ErrNotExist)
	}
}

// zeroReader yields zeros forever.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

// TestStreamDecoder_BoundedMemory decodes an artifact whose decompressed
// size is 256 MiB of zeros (compressed to a few hundred KiB) through a
// fixed-size chunk buffer. The allocation budget is a generous constant,
// far below the decompressed size, which fails loudly if anyone ever
// switches to whole-file decompression.
func TestStreamDecoder_BoundedMemory(t *testing.T) {
	const decompressedSize = 256 << 20

	path := filepath.Join(t.TempDir(), "zeros.bin.gz")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create artifact: %v", err)
	}
	codec := NewGzipCodec()
	w, err := codec.NewWriter(file, 1)
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}
	if _, err := io.Copy(w, io.LimitReader(zeroReader{}, decompressedSize)); err != nil {
		t.Fatalf("failed to compress zeros: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("failed to close artifact: %v", err)
	}

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	decoder, err := NewStreamDecoder(path, codec)
	if err != nil {
		t.Fatalf("NewStreamDecoder() error: %v", err)
	}
	defer decoder.Close()

	var total int64
	chunk := make([]byte, 32*1024)
	for {
		n, err := decoder.Read(chunk)
		total += int64(n)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read() error: %v", err)
		}
	}
	if total != decompressedSize {
		t.Fatalf("decoded %d bytes, want %d", total, decompressedSize)
	}

	runtime.ReadMemStats(&after)
	allocated := after.TotalAlloc - before.TotalAlloc
	const budget = 16 << 20
	if allocated > budget {
		t.Errorf("decoding allocated %d bytes, want at most %d (memory must not scale with decompressed size)", allocated, budget)
	}
}
