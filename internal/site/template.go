package site

import (
	"fmt"
	"os"
	"strings"

	"github.com/admin-esegames/esegames-site/internal/foundation/errors"
)

// Default markers delimiting the generated listing region.
const (
	DefaultStartMarker = "<!-- NEWS:START -->"
	DefaultEndMarker   = "<!-- NEWS:END -->"
)

// Template is the listing page as read from disk.
type Template struct {
	Path    string
	Content string
}

// LoadTemplate reads the listing template at path.
func LoadTemplate(path string) (*Template, error) {
	// #nosec G304 -- path comes from the operator's configuration.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.FileSystemError("cannot read listing template").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return &Template{Path: path, Content: string(data)}, nil
}

// ReplaceRegion returns the template content with everything between the
// first start marker and the first end marker after it replaced by content.
// The markers themselves are kept so the next build can find them again.
// A missing marker, or an end marker that only precedes the start marker,
// is a template error.
func (t *Template) ReplaceRegion(start, end, content string) (string, error) {
	if start == "" || end == "" {
		return "", errors.TemplateError("listing markers must not be empty").Build()
	}

	startIdx := strings.Index(t.Content, start)
	if startIdx < 0 {
		return "", t.markerError("start marker not found", start, end)
	}
	bodyStart := startIdx + len(start)
	endRel := strings.Index(t.Content[bodyStart:], end)
	if endRel < 0 {
		if strings.Contains(t.Content[:startIdx], end) {
			return "", t.markerError("end marker precedes start marker", start, end)
		}
		return "", t.markerError("end marker not found", start, end)
	}
	endIdx := bodyStart + endRel

	var b strings.Builder
	b.Grow(len(t.Content) + len(content))
	b.WriteString(t.Content[:bodyStart])
	b.WriteString("\n")
	b.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(t.Content[endIdx:])
	return b.String(), nil
}

func (t *Template) markerError(msg, start, end string) error {
	return errors.TemplateError(fmt.Sprintf("%s in listing template", msg)).
		WithContext("path", t.Path).
		WithContext("start_marker", start).
		WithContext("end_marker", end).
		Build()
}
