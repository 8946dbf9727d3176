package testing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FileAssertions checks the generated site below a base directory.
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{t: t, baseDir: baseDir}
}

// ArticlePath is the page of slug below the default articles directory.
func ArticlePath(slug string) string {
	return filepath.Join("news", slug, "index.html")
}

func (fa *FileAssertions) AssertFileExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		fa.t.Errorf("Expected file to exist: %s", fullPath)
	}
	return fa
}

func (fa *FileAssertions) AssertFileNotExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if _, err := os.Stat(fullPath); err == nil {
		fa.t.Errorf("Expected file to not exist: %s", fullPath)
	}
	return fa
}

// AssertFileContains validates that a file contains every expected fragment.
func (fa *FileAssertions) AssertFileContains(relativePath string, fragments ...string) *FileAssertions {
	fa.t.Helper()
	content, ok := fa.read(relativePath)
	if !ok {
		return fa
	}
	for _, want := range fragments {
		if !strings.Contains(content, want) {
			fa.t.Errorf("Expected %s to contain %q\nActual content:\n%s", relativePath, want, content)
		}
	}
	return fa
}

func (fa *FileAssertions) AssertFileNotContains(relativePath string, fragments ...string) *FileAssertions {
	fa.t.Helper()
	content, ok := fa.read(relativePath)
	if !ok {
		return fa
	}
	for _, unwanted := range fragments {
		if strings.Contains(content, unwanted) {
			fa.t.Errorf("Expected %s to not contain %q", relativePath, unwanted)
		}
	}
	return fa
}

// AssertFileEquals validates the exact content, e.g. an untouched template.
func (fa *FileAssertions) AssertFileEquals(relativePath, expected string) *FileAssertions {
	fa.t.Helper()
	if content, ok := fa.read(relativePath); ok && content != expected {
		fa.t.Errorf("Unexpected content in %s\nwant:\n%s\ngot:\n%s", relativePath, expected, content)
	}
	return fa
}

// AssertNoTempFiles fails when an interrupted atomic write left a temp file.
func (fa *FileAssertions) AssertNoTempFiles(prefix string) *FileAssertions {
	fa.t.Helper()
	err := filepath.WalkDir(fa.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), prefix) {
			fa.t.Errorf("Leftover temp file: %s", path)
		}
		return nil
	})
	if err != nil {
		fa.t.Errorf("Failed to walk %s: %v", fa.baseDir, err)
	}
	return fa
}

// GetFileContent reads and returns the content of a file.
func (fa *FileAssertions) GetFileContent(relativePath string) string {
	fa.t.Helper()
	content, err := os.ReadFile(filepath.Join(fa.baseDir, relativePath))
	if err != nil {
		fa.t.Fatalf("Failed to read file %s: %v", relativePath, err)
	}
	return string(content)
}

func (fa *FileAssertions) read(relativePath string) (string, bool) {
	fa.t.Helper()
	content, err := os.ReadFile(filepath.Join(fa.baseDir, relativePath))
	if err != nil {
		fa.t.Errorf("Failed to read file %s: %v", relativePath, err)
		return "", false
	}
	return string(content), true
}
