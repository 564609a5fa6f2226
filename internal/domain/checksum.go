package domain

import (
	"bytes"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"hash"
	"hash/adler32"
	"hash/crc32"

	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
)

// ChecksumKind identifies a checksum algorithm used to compare source
// contents with decompressed artifact contents. Exactly one kind is active
// per run: it is selected (or parsed from configuration) once at startup and
// carried by value into every verifier, so there is no hidden global state.
type ChecksumKind int

const (
	// ChecksumXXH3 is XXH3-128, the fastest kind and the default choice.
	ChecksumXXH3 ChecksumKind = iota

	// ChecksumBLAKE3 is BLAKE3-256.
	ChecksumBLAKE3

	// ChecksumSHA256 is SHA-256.
	ChecksumSHA256

	// ChecksumSHA1 is SHA-1. Content comparison is not an adversarial
	// setting, so SHA-1 remains a valid baseline. It is the guaranteed
	// floor of the preference list.
	ChecksumSHA1

	// ChecksumCRC32 is the IEEE CRC-32.
	ChecksumCRC32

	// ChecksumAdler32 is Adler-32.
	ChecksumAdler32
)

// checksumPreference is the static selection order, fastest first. The
// trailing entry must always be available; selection failing entirely is a
// startup-fatal condition that should never trigger.
var checksumPreference = []ChecksumKind{ChecksumXXH3, ChecksumSHA1}

// String returns the configuration name of the checksum kind.
func (k ChecksumKind) String() string {
	switch k {
	case ChecksumXXH3:
		return "xxh3-128"
	case ChecksumBLAKE3:
		return "blake3"
	case ChecksumSHA256:
		return "sha256"
	case ChecksumSHA1:
		return "sha1"
	case ChecksumCRC32:
		return "crc32"
	case ChecksumAdler32:
		return "adler32"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ParseChecksumKind parses a checksum kind from its configuration name.
func ParseChecksumKind(name string) (ChecksumKind, error) {
	switch name {
	case "xxh3-128", "xxh3":
		return ChecksumXXH3, nil
	case "blake3":
		return ChecksumBLAKE3, nil
	case "sha256":
		return ChecksumSHA256, nil
	case "sha1":
		return ChecksumSHA1, nil
	case "crc32":
		return ChecksumCRC32, nil
	case "adler32":
		return ChecksumAdler32, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownChecksum, name)
	}
}

// DigestSize returns the digest size in bytes.
func (k ChecksumKind) DigestSize() int {
	switch k {
	case ChecksumXXH3:
		return 16
	case ChecksumBLAKE3, ChecksumSHA256:
		return 32
	case ChecksumSHA1:
		return 20
	case ChecksumCRC32, ChecksumAdler32:
		return 4
	default:
		return 0
	}
}

// xxh3Hash adapts the xxh3 streaming state to hash.Hash with the full
// 128-bit digest.
type xxh3Hash struct {
	*xxh3.Hasher
}

func (h xxh3Hash) Sum(b []byte) []byte {
	sum := h.Sum128().Bytes()
	return append(b, sum[:]...)
}

func (h xxh3Hash) Size() int { return 16 }

func (h xxh3Hash) BlockSize() int { return 256 }

// newHash constructs the underlying incremental hash state for the kind.
func (k ChecksumKind) newHash() hash.Hash {
	switch k {
	case ChecksumXXH3:
		return xxh3Hash{xxh3.New()}
	case ChecksumBLAKE3:
		return blake3.New()
	case ChecksumSHA256:
		return sha256.New()
	case ChecksumSHA1:
		return sha1.New()
	case ChecksumCRC32:
		return crc32.NewIEEE()
	case ChecksumAdler32:
		return adler32.New()
	default:
		return nil
	}
}

// available reports whether the kind's implementation is usable in this
// process. All compiled-in kinds are; the predicate exists so the selection
// scan stays a genuine capability probe rather than a hardcoded constant.
func (k ChecksumKind) available() bool {
	return k.newHash() != nil
}

// SelectChecksum returns the first usable kind from the static preference
// order. The result is deterministic for a given build. It should be called
// once at startup and the result passed into Options.
func SelectChecksum() (ChecksumKind, error) {
	for _, kind := range checksumPreference {
		if kind.available() {
			return kind, nil
		}
	}
	return 0, ErrChecksumUnavailable
}

// Digest is a checksum result. Digests are compared by byte equality only;
// they carry no ordering.
type Digest []byte

// Equal reports whether two digests are byte-identical.
func (d Digest) Equal(other Digest) bool {
	return bytes.Equal(d, other)
}

// Hasher is an incremental checksum state for a single ChecksumKind. A
// hasher is single-use: Finalize invalidates it, and any use after that is a
// programming error, not a runtime condition.
type Hasher struct {
	kind      ChecksumKind
	h         hash.Hash
	finalized bool
}

// NewHasher creates a fresh incremental hasher for the kind.
func NewHasher(kind ChecksumKind) *Hasher {
	h := kind.newHash()
	if h == nil {
		panic(fmt.Sprintf("domain: no hash implementation for %v", kind))
	}
	return &Hasher{kind: kind, h: h}
}

// Kind returns the checksum kind this hasher computes.
func (h *Hasher) Kind() ChecksumKind {
	return h.kind
}

// Update folds one chunk into the running digest. Chunks of any length are
// accepted; an empty chunk has no effect.
func (h *Hasher) Update(chunk []byte) {
	if h.finalized {
		panic("domain: Hasher.Update after Finalize")
	}
	if len(chunk) == 0 {
		return
	}
	// hash.Hash.Write never returns an error.
	h.h.Write(chunk)
}

// Finalize returns the digest and invalidates the hasher.
func (h *Hasher) Finalize() Digest {
	if h.finalized {
		panic("domain: Hasher.Finalize called twice")
	}
	h.finalized = true
	return Digest(h.h.Sum(nil))
}
