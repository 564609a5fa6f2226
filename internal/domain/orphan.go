package domain

import (
	"context"
	"fmt"
	"os"

	"github.com/statix-dev/precompress/internal/port"
)

// OrphanResult reports the removal attempt for one orphaned artifact.
type OrphanResult struct {
	Artifact string
	Err      error // nil when the orphan was removed
}

// OrphanScanner finds and removes artifacts whose source file no longer
// exists. Every call walks the tree fresh; no orphan state is cached
// between invocations.
type OrphanScanner struct {
	walker port.SourceWalker
}

// NewOrphanScanner creates an OrphanScanner over the given walker.
func NewOrphanScanner(walker port.SourceWalker) *OrphanScanner {
	return &OrphanScanner{walker: walker}
}

// FindOrphans calls fn for each orphaned artifact under root as the walk
// discovers it. A non-nil error from fn stops the scan.
func (s *OrphanScanner) FindOrphans(ctx context.Context, root string, fn func(artifactPath string) error) error {
	return s.walker.WalkOrphans(ctx, root, fn)
}

// RemoveOrphans deletes every orphaned artifact under root. Deletion
// failures are reported through onResult and counted, but do not halt the
// scan; removal of one orphan is independent of every other file. Only an
// unwalkable tree returns an error.
func (s *OrphanScanner) RemoveOrphans(ctx context.Context, root string, onResult func(OrphanResult)) (removed, failed int, err error) {
	walkErr := s.walker.WalkOrphans(ctx, root, func(artifactPath string) error {
		result := OrphanResult{Artifact: artifactPath}
		if removeErr := os.Remove(artifactPath); removeErr != nil {
			result.Err = fmt.Errorf("failed to remove orphan %s: %w", artifactPath, removeErr)
			failed++
		} else {
			removed++
		}
		if onResult != nil {
			onResult(result)
		}
		return nil
	})
	if walkErr != nil {
		return removed, failed, fmt.Errorf("failed to walk %s: %w", root, walkErr)
	}
	return removed, failed, nil
}
