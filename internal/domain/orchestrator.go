package domain

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/statix-dev/precompress/internal/port"
)

// Action is the action the orchestrator took for one source file.
type Action int

const (
	// ActionCreated means no artifact existed and one was written.
	ActionCreated Action = iota

	// ActionRecompressed means a stale or corrupt artifact was replaced.
	ActionRecompressed

	// ActionSkipped means the artifact was already current; nothing was
	// written.
	ActionSkipped

	// ActionFailed means this file could not be processed. The run
	// continues with the remaining files.
	ActionFailed
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionCreated:
		return "created"
	case ActionRecompressed:
		return "recompressed"
	case ActionSkipped:
		return "skipped"
	case ActionFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(a))
	}
}

// FileResult reports what happened to a single (source, artifact) pair.
type FileResult struct {
	Source   string
	Artifact string
	Action   Action

	// Verification is the verification outcome that led to the action.
	// Nil in force mode and for walk-level failures.
	Verification *VerificationResult

	// Err is set when Action is ActionFailed.
	Err error

	// AttrErr reports a failed attribute copy after a successful write.
	// Non-fatal: the artifact content is valid, only mode/mtime
	// propagation failed.
	AttrErr error
}

// Summary aggregates a whole run.
type Summary struct {
	Created        int
	Recompressed   int
	Unchanged      int
	OrphansRemoved int
	Failed         int
}

// Changed reports whether the run modified the tree at all.
func (s *Summary) Changed() bool {
	return s.Created+s.Recompressed+s.OrphansRemoved > 0
}

// Options carries the per-run configuration of an Orchestrator. It is
// immutable after startup and shared read-only across workers; the checksum
// kind in particular is selected once and never changes mid-run.
type Options struct {
	Kind   ChecksumKind
	Level  int
	Suffix string // artifact suffix, including the leading dot
	Force  bool   // recompress existing artifacts without verifying
	Jobs   int    // worker count; values < 1 mean one worker
}

// Orchestrator drives the per-file state machine: verify, then create,
// recompress, or skip. Files are independent, so the run fans out over a
// bounded worker pool; each worker owns its hashers and decoder handles,
// and the only shared state is the read-only Options and the tallied
// Summary.
type Orchestrator struct {
	options  Options
	verifier *Verifier
	codec    port.Codec
	walker   port.SourceWalker
	attrs    port.AttributeCopier
}

// NewOrchestrator creates an Orchestrator. The verifier must use the same
// checksum kind as options.Kind; the codec must be the one that produced,
// and will produce, the artifacts under options.Suffix.
func NewOrchestrator(options Options, verifier *Verifier, codec port.Codec, walker port.SourceWalker, attrs port.AttributeCopier) *Orchestrator {
	return &Orchestrator{
		options:  options,
		verifier: verifier,
		codec:    codec,
		walker:   walker,
		attrs:    attrs,
	}
}

// Run processes every eligible source under root and returns the tallied
// summary. onResult, if non-nil, is called once per file; calls are
// serialized, so the callback needs no locking of its own.
//
// Per-file failures are counted and reported through onResult but never
// abort the run. Only an unwalkable tree (e.g. an unreadable root) returns
// an error.
func (o *Orchestrator) Run(ctx context.Context, root string, onResult func(*FileResult)) (*Summary, error) {
	summary := &Summary{}
	var mu sync.Mutex

	record := func(result *FileResult) {
		mu.Lock()
		defer mu.Unlock()
		switch result.Action {
		case ActionCreated:
			summary.Created++
		case ActionRecompressed:
			summary.Recompressed++
		case ActionSkipped:
			summary.Unchanged++
		case ActionFailed:
			summary.Failed++
		}
		if onResult != nil {
			onResult(result)
		}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(o.options.Jobs, 1))

	walkErr := o.walker.WalkSources(groupCtx, root, func(sourcePath string) error {
		group.Go(func() error {
			record(o.ProcessFile(groupCtx, sourcePath))
			return nil
		})
		return nil
	})

	if err := group.Wait(); err != nil {
		return summary, err
	}
	if walkErr != nil {
		return summary, fmt.Errorf("failed to walk %s: %w", root, walkErr)
	}
	return summary, nil
}

// ProcessFile runs the state machine for one source file: decide via
// verification (or force), then write and propagate attributes if needed.
func (o *Orchestrator) ProcessFile(ctx context.Context, sourcePath string) *FileResult {
	result := &FileResult{
		Source:   sourcePath,
		Artifact: sourcePath + o.options.Suffix,
	}

	if o.options.Force {
		result.Action = ActionCreated
		if _, err := os.Lstat(result.Artifact); err == nil {
			result.Action = ActionRecompressed
		}
	} else {
		verification, err := o.verifier.Verify(ctx, sourcePath, result.Artifact)
		if err != nil {
			result.Action = ActionFailed
			result.Err = err
			return result
		}
		result.Verification = verification

		switch verification.Status {
		case VerificationMatch:
			result.Action = ActionSkipped
			return result
		case VerificationArtifactAbsent:
			result.Action = ActionCreated
		case VerificationMismatch, VerificationArtifactCorrupt:
			result.Action = ActionRecompressed
		}
	}

	if err := o.writeArtifact(ctx, sourcePath, result.Artifact); err != nil {
		result.Action = ActionFailed
		result.Err = err
		return result
	}

	// The artifact content is already durable and correct at this point;
	// a failed attribute copy is reported but does not fail the file.
	result.AttrErr = o.attrs.CopyAttributes(sourcePath, result.Artifact)
	return result
}

// writeArtifact compresses sourcePath into artifactPath atomically: the
// stream goes to a temporary file in the same directory, which is renamed
// over the final path only after the compressor has flushed its trailer. A
// concurrent reader of the artifact path (a web server, typically) never
// observes a partial write, and an interrupted run leaves only a
// discardable temp file behind.
func (o *Orchestrator) writeArtifact(ctx context.Context, sourcePath, artifactPath string) (err error) {
	source, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", sourcePath, err)
	}
	defer source.Close()

	temp, err := os.CreateTemp(filepath.Dir(artifactPath), ".precompress-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", artifactPath, err)
	}
	defer func() {
		if err != nil {
			temp.Close()
			os.Remove(temp.Name())
		}
	}()

	compressor, err := o.codec.NewWriter(temp, o.options.Level)
	if err != nil {
		return err
	}

	buf := make([]byte, verifyBlockSize)
	if _, err = copyContext(ctx, compressor, source, buf); err != nil {
		compressor.Close()
		return fmt.Errorf("failed to compress %s: %w", sourcePath, err)
	}
	if err = compressor.Close(); err != nil {
		return fmt.Errorf("failed to compress %s: %w", sourcePath, err)
	}
	if err = temp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", artifactPath, err)
	}
	if err = os.Rename(temp.Name(), artifactPath); err != nil {
		os.Remove(temp.Name())
		return fmt.Errorf("failed to replace %s: %w", artifactPath, err)
	}
	return nil
}

// copyContext is io.CopyBuffer with a cancellation check per block.
func copyContext(ctx context.Context, dst io.Writer, src io.Reader, buf []byte) (int64, error) {
	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		n, readErr := src.Read(buf)
		if n > 0 {
			w, writeErr := dst.Write(buf[:n])
			written += int64(w)
			if writeErr != nil {
				return written, writeErr
			}
			if w != n {
				return written, io.ErrShortWrite
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}
