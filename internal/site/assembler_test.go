package site

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admin-esegames/esegames-site/internal/assets"
	"github.com/admin-esegames/esegames-site/internal/contentful"
	"github.com/admin-esegames/esegames-site/internal/richtext"
)

func testIndex() assets.Index {
	hero := contentful.Asset{Sys: contentful.Sys{ID: "hero"}}
	hero.Fields.Title = "Launch art"
	hero.Fields.File = &contentful.AssetFile{
		URL:     "//images.example/hero.jpg",
		Details: &contentful.FileDetails{Image: &contentful.ImageDetails{Width: 1200, Height: 630}},
	}
	untitled := contentful.Asset{Sys: contentful.Sys{ID: "untitled"}}
	untitled.Fields.File = &contentful.AssetFile{URL: "https://images.example/u.png"}
	empty := contentful.Asset{Sys: contentful.Sys{ID: "nofile"}}
	return assets.NewIndex([]contentful.Asset{hero, untitled, empty})
}

func testOptions() Options {
	return Options{
		BaseURL:           "https://esegames.example/",
		SiteName:          "ESE Games",
		Language:          "en",
		Organization:      "ESE Games Ltd",
		Logo:              "/img/logo.png",
		ArticlesDir:       "/news/",
		ListingURL:        "news.html",
		LeadParagraphs:    1,
		DescriptionLength: 160,
	}
}

func paragraphs(texts ...string) richtext.Document {
	nodes := make([]richtext.Node, 0, len(texts))
	for _, s := range texts {
		nodes = append(nodes, richtext.Paragraph{Children: []richtext.Node{richtext.Text{Value: s}}})
	}
	return richtext.Document{Nodes: nodes}
}

func TestPrepare(t *testing.T) {
	a := NewAssembler(testOptions(), testIndex())
	arts := a.Prepare([]contentful.Entry{
		{ID: "1", Title: "Hello, World!", HeroMedia: "hero"},
		{ID: "2", Title: "Hello world"},
		{ID: "3", Slug: "custom-slug", Title: "Ignored", HeroMedia: "nofile"},
		{ID: "4", HeroMedia: "dangling"},
	})
	require.Len(t, arts, 4)

	assert.Equal(t, "hello-world", arts[0].Slug)
	assert.Equal(t, "/news/hello-world/", arts[0].Path)
	assert.Equal(t, "https://esegames.example/news/hello-world/", arts[0].URL)
	assert.True(t, arts[0].HasHero)
	assert.Equal(t, "https://images.example/hero.jpg", arts[0].Hero.URL)

	assert.Equal(t, "hello-world-2", arts[1].Slug)
	assert.False(t, arts[1].HasHero)

	assert.Equal(t, "custom-slug", arts[2].Slug)
	assert.False(t, arts[2].HasHero, "asset without a file is not a usable hero")

	assert.Equal(t, "4", arts[3].Slug)
	assert.False(t, arts[3].HasHero)

	assert.Equal(t, filepath.Join("out", "news", "hello-world", "index.html"), a.ArticleFile("out", arts[0]))
	assert.Equal(t, "https://esegames.example/news.html", a.ListingAbsoluteURL())
}

func TestHeroMediaAltFallback(t *testing.T) {
	a := NewAssembler(testOptions(), testIndex())
	arts := a.Prepare([]contentful.Entry{
		{ID: "1", Title: "Titled", HeroMedia: "hero"},
		{ID: "2", Title: "Fallback title", HeroMedia: "untitled"},
	})
	assert.Equal(t, "Launch art", richtext.AltText(heroMedia(arts[0])))
	assert.Equal(t, "Fallback title", richtext.AltText(heroMedia(arts[1])))
}

func TestNewAssembler_Defaults(t *testing.T) {
	a := NewAssembler(Options{BaseURL: "https://x.example"}, assets.Index{})
	opts := a.Options()
	assert.Equal(t, "news", opts.ArticlesDir)
	assert.Equal(t, "/", opts.ListingURL)

	arts := a.Prepare([]contentful.Entry{{ID: "a", Title: "A", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}})
	assert.Equal(t, "https://x.example/news/a/", arts[0].URL)
}
