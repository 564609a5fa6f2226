package port

import "context"

// SourceWalker is the abstraction interface for discovering work in a
// directory tree. The domain does not interpret file extensions itself; the
// walker applies the configured allow-list and yields paths one at a time.
type SourceWalker interface {
	// WalkSources calls fn for every eligible source file under root.
	// Eligibility is decided by the walker's extension allow-list;
	// artifact files are never yielded as sources. A non-nil error from
	// fn stops the walk and is returned. An unreadable root is an error.
	WalkSources(ctx context.Context, root string, fn func(sourcePath string) error) error

	// WalkOrphans calls fn for every artifact file under root whose
	// corresponding source file no longer exists. Only artifacts whose
	// stripped name carries an allow-listed extension are considered, so
	// unrelated files that merely share the suffix (e.g. downloadable
	// tarballs) are left alone. Each invocation walks the tree fresh; no
	// state persists between calls.
	WalkOrphans(ctx context.Context, root string, fn func(artifactPath string) error) error
}
