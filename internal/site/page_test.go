package site

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admin-esegames/esegames-site/internal/contentful"
)

func extractLD(t *testing.T, page string) map[string]any {
	t.Helper()
	const open = `<script type="application/ld+json">`
	start := strings.Index(page, open)
	require.GreaterOrEqual(t, start, 0, "no JSON-LD block")
	rest := page[start+len(open):]
	end := strings.Index(rest, "</script>")
	require.GreaterOrEqual(t, end, 0)

	var ld map[string]any
	require.NoError(t, json.Unmarshal([]byte(rest[:end]), &ld))
	return ld
}

func TestRenderArticle(t *testing.T) {
	a := NewAssembler(testOptions(), testIndex())
	arts := a.Prepare([]contentful.Entry{{
		ID:        "e1",
		Title:     "Patch & Play",
		Date:      time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC),
		Link:      "https://source.example/p",
		HeroMedia: "hero",
		Body:      paragraphs(strings.Repeat("a", 150), "<b>tail</b> text beyond the cut"),
	}})
	chrome := Chrome{
		Header:    `<header><a href="/">Home</a></header>`,
		Footer:    `<footer>Foot</footer>`,
		HeadLinks: `<link rel="stylesheet" href="/css/site.css"/>`,
	}

	page, err := a.RenderArticle(arts[0], chrome)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>\n<html lang=\"en\">"))
	assert.Contains(t, page, "<title>Patch &amp; Play | ESE Games</title>")
	assert.Contains(t, page, `<link rel="canonical" href="https://esegames.example/news/patch-play/">`)

	wantDesc := strings.Repeat("a", 150) + "&lt;b&gt;tail&lt;/b"
	assert.Contains(t, page, `<meta name="description" content="`+wantDesc+`">`)
	assert.Contains(t, page, `<meta property="og:description" content="`+wantDesc+`">`)
	assert.Contains(t, page, `<meta property="og:title" content="Patch &amp; Play">`)
	assert.Contains(t, page, `<meta property="og:url" content="https://esegames.example/news/patch-play/">`)
	assert.Contains(t, page, `<meta property="og:image" content="https://images.example/hero.jpg">`)
	assert.Contains(t, page, `<link rel="stylesheet" href="/css/site.css"/>`)

	assert.Contains(t, page, `<header><a href="/">Home</a></header>`)
	assert.Contains(t, page, `<footer>Foot</footer>`)
	assert.Less(t, strings.Index(page, "<header>"), strings.Index(page, "<main"))
	assert.Greater(t, strings.Index(page, "<footer>"), strings.Index(page, "</main>"))

	assert.Contains(t, page, `<h1 class="news-article__title">Patch &amp; Play</h1>`)
	assert.Contains(t, page, `loading="eager" fetchpriority="high" width="1200" height="630"`)
	assert.Contains(t, page, "<p>&lt;b&gt;tail&lt;/b&gt; text beyond the cut</p>")
	assert.Contains(t, page, `href="https://source.example/p" target="_blank" rel="noopener noreferrer">Read the original</a>`)
	assert.Contains(t, page, `<a href="/news.html">Back to news</a>`)

	ld := extractLD(t, page)
	assert.Equal(t, "https://schema.org", ld["@context"])
	assert.Equal(t, "NewsArticle", ld["@type"])
	assert.Equal(t, "Patch & Play", ld["headline"])
	assert.Equal(t, "2024-05-01T09:00:00Z", ld["datePublished"])
	assert.Equal(t, "2024-05-03T12:00:00Z", ld["dateModified"])
	assert.Equal(t, []any{"https://images.example/hero.jpg"}, ld["image"])
	publisher, ok := ld["publisher"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Organization", publisher["@type"])
	assert.Equal(t, "ESE Games Ltd", publisher["name"])
	logo, ok := publisher["logo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://esegames.example/img/logo.png", logo["url"])
	author, ok := ld["author"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ESE Games Ltd", author["name"])
}

func TestRenderArticle_MinimalEntry(t *testing.T) {
	opts := testOptions()
	opts.Organization = ""
	opts.Logo = ""
	a := NewAssembler(opts, testIndex())
	arts := a.Prepare([]contentful.Entry{{ID: "x1", Title: "Bare"}})

	page, err := a.RenderArticle(arts[0], Chrome{})
	require.NoError(t, err)

	assert.NotContains(t, page, "<header")
	assert.NotContains(t, page, "<footer")
	assert.NotContains(t, page, "og:image")
	assert.NotContains(t, page, "<time")
	assert.NotContains(t, page, "Read the original")
	assert.Contains(t, page, `<meta name="description" content="">`)

	ld := extractLD(t, page)
	assert.NotContains(t, ld, "datePublished")
	assert.NotContains(t, ld, "dateModified")
	assert.NotContains(t, ld, "image")
	publisher := ld["publisher"].(map[string]any)
	assert.Equal(t, "ESE Games", publisher["name"])
	assert.NotContains(t, publisher, "logo")
}

func TestRenderArticle_ScriptBreakoutEscaped(t *testing.T) {
	a := NewAssembler(testOptions(), testIndex())
	arts := a.Prepare([]contentful.Entry{{ID: "s", Title: "</script><script>alert(1)</script>"}})

	page, err := a.RenderArticle(arts[0], Chrome{})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(page, "</script>"))
	assert.Equal(t, "</script><script>alert(1)</script>", extractLD(t, page)["headline"])
}

func TestLinkedData_ModifiedFallsBackToPublished(t *testing.T) {
	a := NewAssembler(testOptions(), testIndex())
	arts := a.Prepare([]contentful.Entry{{ID: "d", Title: "Dated", Date: time.Date(2023, 12, 24, 18, 30, 0, 0, time.FixedZone("CET", 3600))}})

	raw, err := a.LinkedData(arts[0])
	require.NoError(t, err)
	var ld map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &ld))
	assert.Equal(t, "2023-12-24T17:30:00Z", ld["datePublished"])
	assert.Equal(t, "2023-12-24T17:30:00Z", ld["dateModified"])
}
