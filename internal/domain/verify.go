// Package domain provides the core logic of precompress: checksum kind
// selection, artifact verification, the per-file compression orchestrator,
// and orphan scanning.
package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/statix-dev/precompress/internal/port"
)

// verifyBlockSize is the read block size for both the source file and the
// decoded artifact stream. Moderate on purpose: large enough to keep
// syscall overhead low, small enough that per-worker memory stays trivial.
const verifyBlockSize = 32 * 1024

// VerificationStatus classifies the outcome of comparing a source file with
// its compressed artifact.
type VerificationStatus int

const (
	// VerificationMatch means the artifact's decompressed bytes equal the
	// source's bytes. The artifact is current.
	VerificationMatch VerificationStatus = iota

	// VerificationMismatch means the artifact decodes cleanly but its
	// contents differ from the source. Expected after a source edit; it
	// triggers recompression, it is not a failure.
	VerificationMismatch

	// VerificationArtifactAbsent means no artifact exists at the expected
	// path.
	VerificationArtifactAbsent

	// VerificationArtifactCorrupt means the artifact could not be decoded
	// (bad header, truncated stream, or a container-internal checksum
	// failure). The reason is carried on the result.
	VerificationArtifactCorrupt
)

// String returns a human-readable status name.
func (s VerificationStatus) String() string {
	switch s {
	case VerificationMatch:
		return "match"
	case VerificationMismatch:
		return "mismatch"
	case VerificationArtifactAbsent:
		return "artifact absent"
	case VerificationArtifactCorrupt:
		return "artifact corrupt"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// VerificationResult is the outcome of a single Verify call. Results are
// produced fresh per call and never persisted; the artifact's content on
// disk is the only durable state.
type VerificationResult struct {
	Status         VerificationStatus
	Source         string // source file path
	Artifact       string // artifact file path
	Kind           ChecksumKind
	SourceDigest   Digest // set on Match and Mismatch
	ArtifactDigest Digest // set on Match and Mismatch
	Reason         error  // set on ArtifactCorrupt
}

// Verifier decides whether a compressed artifact is current by comparing
// checksums of the source bytes and of the artifact's decompressed stream.
// Both sides are read in one streaming pass each; nothing is seeked,
// buffered whole, or read twice. A Verifier is stateless apart from its
// configuration and safe for concurrent use; each call creates its own
// hashers and decoder handle.
type Verifier struct {
	kind   ChecksumKind
	opener port.ArtifactOpener
}

// NewVerifier creates a Verifier using the given checksum kind for both
// digests and the given opener for artifact streams.
func NewVerifier(kind ChecksumKind, opener port.ArtifactOpener) *Verifier {
	return &Verifier{kind: kind, opener: opener}
}

// Kind returns the checksum kind this verifier compares with.
func (v *Verifier) Kind() ChecksumKind {
	return v.kind
}

// Verify compares sourcePath's bytes with the decompressed bytes of
// artifactPath.
//
// The absent check runs before anything is opened, so a missing artifact
// costs one stat. Decode failures of any sort yield an ArtifactCorrupt
// result rather than an error: a broken artifact is a normal condition that
// the orchestrator answers with recompression. Errors are reserved for the
// source side (an unreadable source means nothing sensible can be decided).
func (v *Verifier) Verify(ctx context.Context, sourcePath, artifactPath string) (*VerificationResult, error) {
	result := &VerificationResult{
		Source:   sourcePath,
		Artifact: artifactPath,
		Kind:     v.kind,
	}

	if _, err := os.Lstat(artifactPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.Status = VerificationArtifactAbsent
			return result, nil
		}
		return nil, fmt.Errorf("failed to stat artifact %s: %w", artifactPath, err)
	}

	sourceDigest, err := v.HashFile(ctx, sourcePath)
	if err != nil {
		return nil, err
	}

	artifactDigest, err := v.hashArtifact(ctx, artifactPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Deleted between the stat and the open; same as absent.
			result.Status = VerificationArtifactAbsent
			return result, nil
		}
		result.Status = VerificationArtifactCorrupt
		result.Reason = err
		return result, nil
	}

	result.SourceDigest = sourceDigest
	result.ArtifactDigest = artifactDigest
	if sourceDigest.Equal(artifactDigest) {
		result.Status = VerificationMatch
	} else {
		result.Status = VerificationMismatch
	}
	return result, nil
}

// HashFile computes the digest of a file's bytes, streamed in fixed-size
// blocks. It is also the checksum-only path for sources that have no
// artifact yet.
func (v *Verifier) HashFile(ctx context.Context, path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer file.Close()

	return v.hashStream(ctx, file)
}

// hashArtifact computes the digest of the artifact's decompressed stream.
func (v *Verifier) hashArtifact(ctx context.Context, path string) (Digest, error) {
	decoder, err := v.opener.OpenArtifact(path)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()

	return v.hashStream(ctx, decoder)
}

// hashStream folds r into a fresh hasher block by block. Both digests of a
// Verify call come through here, which pins them to the same ChecksumKind
// by construction.
func (v *Verifier) hashStream(ctx context.Context, r io.Reader) (Digest, error) {
	hasher := NewHasher(v.kind)
	buf := make([]byte, verifyBlockSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := r.Read(buf)
		hasher.Update(buf[:n])
		if err == io.EOF {
			return hasher.Finalize(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}
