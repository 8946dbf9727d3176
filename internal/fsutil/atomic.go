// Package fsutil writes build artifacts.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	// TempFilePrefix is the prefix used for temporary atomic write files.
	TempFilePrefix = ".newsbuild-tmp-"

	// FilePerm is the mode for generated site files; they are public by nature.
	FilePerm os.FileMode = 0o644
	// DirPerm is the mode for directories created on the way to a file.
	DirPerm os.FileMode = 0o755
)

// WriteFileAtomic writes data to a temp file in the target directory and
// renames it over filename, creating parent directories as needed. Readers
// see either the old content or the new content, never a partial file.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmpFile.Name()
	defer func() {
		_ = os.Remove(tmpName) // no-op after a successful rename
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", filename, err)
	}
	return nil
}

// Writer persists one artifact.
type Writer interface {
	WriteFile(path string, data []byte) error
}

// AtomicWriter writes through WriteFileAtomic with FilePerm.
type AtomicWriter struct{}

func (AtomicWriter) WriteFile(path string, data []byte) error {
	return WriteFileAtomic(path, data, FilePerm)
}

// DryRunWriter records what would have been written and touches nothing.
type DryRunWriter struct {
	mu      sync.Mutex
	written map[string]int
	order   []string
}

func (w *DryRunWriter) WriteFile(path string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.written == nil {
		w.written = make(map[string]int)
	}
	if _, seen := w.written[path]; !seen {
		w.order = append(w.order, path)
	}
	w.written[path] = len(data)
	return nil
}

// Paths returns every recorded path in first-write order.
func (w *DryRunWriter) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.order...)
}

// Size returns the byte count last recorded for path.
func (w *DryRunWriter) Size(path string) (int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, ok := w.written[path]
	return n, ok
}
