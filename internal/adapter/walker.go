package adapter

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions returns the built-in allow-list of static file
// extensions worth precompressing: text-like web assets. Already-compressed
// formats (images, fonts in woff2, video) are deliberately absent, since
// recompressing them wastes CPU for no size win.
func DefaultExtensions() []string {
	return []string{
		".atom",
		".css",
		".csv",
		".eot",
		".htm",
		".html",
		".ics",
		".js",
		".json",
		".md",
		".mjs",
		".otf",
		".rss",
		".svg",
		".ttf",
		".txt",
		".wasm",
		".webmanifest",
		".xhtml",
		".xml",
		".yaml",
		".yml",
	}
}

// ReadExtensionsFile reads an allow-list file with one extension per line.
// Blank lines are skipped; extensions are used exactly as written, so each
// line should include the leading dot.
func ReadExtensionsFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read extensions file %s: %w", path, err)
	}
	defer file.Close()

	var extensions []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		extensions = append(extensions, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read extensions file %s: %w", path, err)
	}
	return extensions, nil
}

// extension returns the filename's extension including the leading dot, or
// "" if there is none. A leading dot alone (dotfiles) and a trailing dot do
// not count as extensions.
func extension(name string) string {
	index := strings.LastIndexByte(name, '.')
	if 0 < index && index < len(name)-1 {
		return name[index:]
	}
	return ""
}

// TreeWalker is the port.SourceWalker implementation over the real
// filesystem. It filters by an extension allow-list and treats any path
// ending in the artifact suffix as an artifact, never a source.
type TreeWalker struct {
	extensions map[string]struct{}
	suffix     string
}

// NewTreeWalker creates a walker for the given allow-list and artifact
// suffix.
func NewTreeWalker(extensions []string, suffix string) *TreeWalker {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[ext] = struct{}{}
	}
	return &TreeWalker{extensions: set, suffix: suffix}
}

// WalkSources calls fn for every regular file under root whose extension is
// allow-listed. The suffix check runs first: after a full run, half the
// tree is artifacts, and rejecting them on the cheap string suffix avoids
// the extension lookup entirely.
func (w *TreeWalker) WalkSources(ctx context.Context, root string, fn func(sourcePath string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.Type().IsRegular() {
			return nil
		}
		name := d.Name()
		if strings.HasSuffix(name, w.suffix) {
			return nil
		}
		if _, ok := w.extensions[extension(name)]; !ok {
			return nil
		}
		return fn(path)
	})
}

// WalkOrphans calls fn for every artifact under root whose source is gone.
// Only artifacts whose stripped name has an allow-listed extension qualify:
// archive.tar.gz is not an orphan of archive.tar unless ".tar" itself is
// allow-listed.
func (w *TreeWalker) WalkOrphans(ctx context.Context, root string, fn func(artifactPath string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.Type().IsRegular() {
			return nil
		}
		name := d.Name()
		if !strings.HasSuffix(name, w.suffix) || len(name) == len(w.suffix) {
			return nil
		}
		source := path[:len(path)-len(w.suffix)]
		if _, ok := w.extensions[extension(filepath.Base(source))]; !ok {
			return nil
		}
		if _, err := os.Lstat(source); err == nil || !os.IsNotExist(err) {
			return nil
		}
		return fn(path)
	})
}
