package contentful

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/admin-esegames/esegames-site/internal/logfields"
	"github.com/admin-esegames/esegames-site/internal/observability"
	"github.com/admin-esegames/esegames-site/internal/richtext"
)

// Field names read from every entry. The date field is configured separately.
const (
	FieldTitle     = "title"
	FieldSlug      = "slug"
	FieldLink      = "link"
	FieldHeroImage = "heroImage"
	FieldBody      = "body"
)

// Entry is one published news post.
type Entry struct {
	ID        string
	Title     string
	Slug      string
	Date      time.Time // zero when absent or unparseable
	UpdatedAt time.Time
	Link      string
	HeroMedia string // asset ID, empty when absent
	Body      richtext.Document
}

// HasDate reports whether the entry carries a publication date.
func (e Entry) HasDate() bool { return !e.Date.IsZero() }

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate accepts the ISO 8601 variants the delivery API emits for date
// fields, with or without seconds and offset.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Entries converts raw items in payload order. Malformed optional fields fall
// back to their zero values and are logged; no entry is dropped.
func Entries(ctx context.Context, p Payload, dateField string) []Entry {
	out := make([]Entry, 0, len(p.Items))
	for _, item := range p.Items {
		out = append(out, convertEntry(ctx, item, dateField))
	}
	return out
}

func convertEntry(ctx context.Context, item RawEntry, dateField string) Entry {
	e := Entry{
		ID:    item.Sys.ID,
		Title: stringField(item.Fields, FieldTitle),
		Slug:  stringField(item.Fields, FieldSlug),
		Link:  strings.TrimSpace(stringField(item.Fields, FieldLink)),
	}
	if t, ok := ParseDate(item.Sys.UpdatedAt); ok {
		e.UpdatedAt = t
	}

	if raw := stringField(item.Fields, dateField); raw != "" {
		if t, ok := ParseDate(raw); ok {
			e.Date = t
		} else {
			observability.WarnContext(ctx, "Ignoring unparseable entry date",
				logfields.EntryID(e.ID), slog.String("date", raw))
		}
	}

	if raw, ok := item.Fields[FieldHeroImage]; ok {
		var link Link
		if err := json.Unmarshal(raw, &link); err == nil {
			e.HeroMedia = link.Sys.ID
		}
	}

	if raw, ok := item.Fields[FieldBody]; ok {
		doc, err := richtext.Decode(raw)
		if err != nil {
			observability.WarnContext(ctx, "Ignoring malformed entry body",
				logfields.EntryID(e.ID), logfields.Error(err))
		}
		e.Body = doc
	}
	return e
}
