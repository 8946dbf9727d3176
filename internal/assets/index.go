// Package assets indexes media assets by ID so rich-text embeds and hero
// images can be resolved to absolute URLs.
package assets

import (
	"strings"

	"github.com/admin-esegames/esegames-site/internal/contentful"
	"github.com/admin-esegames/esegames-site/internal/richtext"
)

// Asset is a resolved media asset. Width and Height are both set or both zero.
type Asset struct {
	ID          string
	URL         string
	Title       string
	Description string
	Width       int
	Height      int
}

// HasDimensions reports whether the intrinsic size is known.
func (a Asset) HasDimensions() bool { return a.Width > 0 && a.Height > 0 }

// Media converts a to the renderer's view of an embedded image.
func (a Asset) Media() richtext.Media {
	return richtext.Media{
		URL:         a.URL,
		Title:       a.Title,
		Description: a.Description,
		Width:       a.Width,
		Height:      a.Height,
	}
}

// Index maps asset IDs to assets. The zero value is an empty index.
type Index struct {
	byID map[string]Asset
}

// NewIndex builds an Index from the included assets. Later duplicates of an
// ID replace earlier ones; assets without an ID are skipped.
func NewIndex(raw []contentful.Asset) Index {
	idx := Index{byID: make(map[string]Asset, len(raw))}
	for _, r := range raw {
		if r.Sys.ID == "" {
			continue
		}
		idx.byID[r.Sys.ID] = convert(r)
	}
	return idx
}

func convert(r contentful.Asset) Asset {
	a := Asset{
		ID:          r.Sys.ID,
		Title:       r.Fields.Title,
		Description: r.Fields.Description,
	}
	if f := r.Fields.File; f != nil {
		a.URL = NormalizeURL(f.URL)
		if f.Details != nil && f.Details.Image != nil {
			w, h := f.Details.Image.Width, f.Details.Image.Height
			if w > 0 && h > 0 {
				a.Width, a.Height = w, h
			}
		}
	}
	return a
}

// NormalizeURL makes protocol-relative URLs absolute with https.
func NormalizeURL(u string) string {
	u = strings.TrimSpace(u)
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}

// Len returns the number of indexed assets.
func (i Index) Len() int { return len(i.byID) }

// Lookup returns the asset for id.
func (i Index) Lookup(id string) (Asset, bool) {
	a, ok := i.byID[id]
	return a, ok
}

// ResolveMedia implements richtext.MediaResolver.
func (i Index) ResolveMedia(id string) (richtext.Media, bool) {
	a, ok := i.Lookup(id)
	if !ok {
		return richtext.Media{}, false
	}
	return a.Media(), true
}
