package adapter

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/statix-dev/precompress/internal/domain"
)

func allCodecs() []LeveledCodec {
	return []LeveledCodec{NewGzipCodec(), NewZstdCodec(), NewBrotliCodec()}
}

func TestCodecs_RoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"empty":      {},
		"short text": []byte("This is a test string with some compressable data."),
		"repetitive": []byte(strings.Repeat("<div class=\"row\"></div>\n", 4096)),
	}

	for _, codec := range allCodecs() {
		for name, input := range inputs {
			t.Run(codec.Name()+"/"+name, func(t *testing.T) {
				var compressed bytes.Buffer
				w, err := codec.NewWriter(&compressed, codec.DefaultLevel())
				if err != nil {
					t.Fatalf("NewWriter() error: %v", err)
				}
				if _, err := w.Write(input); err != nil {
					t.Fatalf("Write() error: %v", err)
				}
				if err := w.Close(); err != nil {
					t.Fatalf("Close() error: %v", err)
				}

				r, err := codec.NewReader(bytes.NewReader(compressed.Bytes()))
				if err != nil {
					t.Fatalf("NewReader() error: %v", err)
				}
				defer r.Close()

				output, err := io.ReadAll(r)
				if err != nil {
					t.Fatalf("ReadAll() error: %v", err)
				}
				if !bytes.Equal(output, input) {
					t.Errorf("round trip produced %d bytes, want %d matching bytes", len(output), len(input))
				}
			})
		}
	}
}

func TestCodecs_InvalidLevel(t *testing.T) {
	tests := []struct {
		codec  LeveledCodec
		levels []int
	}{
		{NewGzipCodec(), []int{0, 10, 11}},
		{NewZstdCodec(), []int{0, 23}},
		{NewBrotliCodec(), []int{-1, 12}},
	}

	for _, tt := range tests {
		for _, level := range tt.levels {
			t.Run(tt.codec.Name(), func(t *testing.T) {
				_, err := tt.codec.NewWriter(io.Discard, level)
				if !errors.Is(err, domain.ErrInvalidLevel) {
					t.Errorf("NewWriter(level=%d) error = %v, want %v", level, err, domain.ErrInvalidLevel)
				}
			})
		}
	}
}

func TestCodecs_Identity(t *testing.T) {
	tests := []struct {
		codec  LeveledCodec
		name   string
		suffix string
	}{
		{NewGzipCodec(), "gzip", ".gz"},
		{NewZstdCodec(), "zstd", ".zst"},
		{NewBrotliCodec(), "brotli", ".br"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.codec.Name() != tt.name {
				t.Errorf("Name() = %q, want %q", tt.codec.Name(), tt.name)
			}
			if tt.codec.Suffix() != tt.suffix {
				t.Errorf("Suffix() = %q, want %q", tt.codec.Suffix(), tt.suffix)
			}
			w, err := tt.codec.NewWriter(io.Discard, tt.codec.DefaultLevel())
			if err != nil {
				t.Errorf("NewWriter() at the default level should work: %v", err)
			} else {
				w.Close()
			}
		})
	}
}

func TestCodecByName(t *testing.T) {
	for _, name := range CodecNames() {
		codec, err := CodecByName(name)
		if err != nil {
			t.Errorf("CodecByName(%q) error: %v", name, err)
			continue
		}
		if codec.Name() != name {
			t.Errorf("CodecByName(%q).Name() = %q", name, codec.Name())
		}
	}

	if _, err := CodecByName("lzma"); !errors.Is(err, domain.ErrUnknownCodec) {
		t.Errorf("CodecByName(\"lzma\") error = %v, want %v", err, domain.ErrUnknownCodec)
	}
}
