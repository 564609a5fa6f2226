package adapter

import (
	"fmt"
	"os"
)

// FileAttributeCopier is the port.AttributeCopier implementation over the
// real filesystem.
type FileAttributeCopier struct{}

// NewFileAttributeCopier creates a new FileAttributeCopier instance.
func NewFileAttributeCopier() *FileAttributeCopier {
	return &FileAttributeCopier{}
}

// CopyAttributes copies the permission bits and modification time from
// sourcePath onto artifactPath, so the artifact is served with the same
// access rules and cache-validation timestamp as its source. The access
// time is set to the modification time; preserving the true atime is not
// portably possible and nothing downstream depends on it.
func (*FileAttributeCopier) CopyAttributes(sourcePath, artifactPath string) error {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", sourcePath, err)
	}
	if err := os.Chmod(artifactPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to copy mode to %s: %w", artifactPath, err)
	}
	if err := os.Chtimes(artifactPath, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to copy times to %s: %w", artifactPath, err)
	}
	return nil
}
