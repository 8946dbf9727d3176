package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admin-esegames/esegames-site/internal/contentful"
	"github.com/admin-esegames/esegames-site/internal/richtext"
)

func rawAsset(id, url string, w, h int) contentful.Asset {
	a := contentful.Asset{Sys: contentful.Sys{ID: id}}
	a.Fields.Title = "T-" + id
	a.Fields.File = &contentful.AssetFile{URL: url}
	if w != 0 || h != 0 {
		a.Fields.File.Details = &contentful.FileDetails{Image: &contentful.ImageDetails{Width: w, Height: h}}
	}
	return a
}

func TestNewIndex(t *testing.T) {
	idx := NewIndex([]contentful.Asset{
		rawAsset("rel", "//images.ctfassets.net/x/rel.png", 800, 600),
		rawAsset("abs", "https://cdn.example/abs.png", 0, 0),
		rawAsset("half", "http://cdn.example/half.png", 800, 0),
		{Sys: contentful.Sys{ID: "nofile"}},
		{},
	})
	assert.Equal(t, 4, idx.Len())

	rel, ok := idx.Lookup("rel")
	require.True(t, ok)
	assert.Equal(t, "https://images.ctfassets.net/x/rel.png", rel.URL)
	assert.Equal(t, "T-rel", rel.Title)
	assert.True(t, rel.HasDimensions())
	assert.Equal(t, 800, rel.Width)
	assert.Equal(t, 600, rel.Height)

	abs, _ := idx.Lookup("abs")
	assert.Equal(t, "https://cdn.example/abs.png", abs.URL)
	assert.False(t, abs.HasDimensions())

	half, _ := idx.Lookup("half")
	assert.Equal(t, "http://cdn.example/half.png", half.URL)
	assert.Zero(t, half.Width)
	assert.Zero(t, half.Height)

	nofile, ok := idx.Lookup("nofile")
	require.True(t, ok)
	assert.Empty(t, nofile.URL)
	assert.Empty(t, nofile.Title)
	assert.Empty(t, nofile.Description)

	_, ok = idx.Lookup("missing")
	assert.False(t, ok)
}

func TestIndex_ZeroValue(t *testing.T) {
	var idx Index
	_, ok := idx.Lookup("x")
	assert.False(t, ok)
	assert.Equal(t, 0, idx.Len())
}

func TestResolveMedia(t *testing.T) {
	idx := NewIndex([]contentful.Asset{rawAsset("a", "//img/a.jpg", 4, 3)})

	var resolver richtext.MediaResolver = idx
	m, ok := resolver.ResolveMedia("a")
	require.True(t, ok)
	assert.Equal(t, richtext.Media{URL: "https://img/a.jpg", Title: "T-a", Width: 4, Height: 3}, m)

	_, ok = resolver.ResolveMedia("b")
	assert.False(t, ok)
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://host/x", NormalizeURL("//host/x"))
	assert.Equal(t, "https://host/x", NormalizeURL(" //host/x "))
	assert.Equal(t, "http://host/x", NormalizeURL("http://host/x"))
	assert.Equal(t, "", NormalizeURL(""))
}
