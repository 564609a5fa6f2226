package port

// AttributeCopier is the abstraction interface for propagating filesystem
// attributes from a source file to its artifact. Failures are reported to
// the caller but are never fatal to a run.
type AttributeCopier interface {
	// CopyAttributes copies the permission bits and modification time of
	// sourcePath onto artifactPath. The access time is copied on a
	// best-effort basis.
	CopyAttributes(sourcePath, artifactPath string) error
}
