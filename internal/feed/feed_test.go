package feed

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var buildTime = time.Date(2024, 6, 10, 15, 4, 5, 0, time.UTC)

func TestSitemap(t *testing.T) {
	out, err := Sitemap("https://site.example/news.html", []string{
		"https://site.example/news/b/",
		"https://site.example/news/a/",
	}, buildTime)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, xml.Header))
	assert.Contains(t, s, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)

	var parsed urlset
	require.NoError(t, xml.Unmarshal(out, &parsed))
	require.Len(t, parsed.URLs, 3)
	assert.Equal(t, "https://site.example/news.html", parsed.URLs[0].Loc)
	assert.Equal(t, "https://site.example/news/b/", parsed.URLs[1].Loc)
	assert.Equal(t, "https://site.example/news/a/", parsed.URLs[2].Loc)
	for _, u := range parsed.URLs {
		assert.Equal(t, "2024-06-10", u.LastMod)
	}
}

func TestSitemap_EscapesURLs(t *testing.T) {
	out, err := Sitemap("https://site.example/?a=1&b=2", nil, buildTime)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<loc>https://site.example/?a=1&amp;b=2</loc>")
}

func TestRSS(t *testing.T) {
	published := time.Date(2024, 5, 1, 9, 0, 0, 0, time.FixedZone("", 2*3600))
	out, err := RSS(Channel{
		Title:       "ESE Games News",
		Link:        "https://site.example/news.html",
		Description: "Latest news",
		Language:    "en",
		SelfURL:     "https://site.example/news.xml",
	}, []Item{
		{Title: "Dated & done", URL: "https://site.example/news/dated/", GUID: "4bQf2", Published: published, Description: "Body &lt;b&gt; ]]> end"},
		{Title: "Undated", URL: "https://site.example/news/undated/", GUID: "7xYz"},
	}, buildTime)
	require.NoError(t, err)
	s := string(out)

	assert.True(t, strings.HasPrefix(s, xml.Header))
	assert.Contains(t, s, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	assert.Contains(t, s, `<atom:link href="https://site.example/news.xml" rel="self" type="application/rss+xml"></atom:link>`)
	assert.Contains(t, s, "<lastBuildDate>Mon, 10 Jun 2024 15:04:05 +0000</lastBuildDate>")
	assert.Contains(t, s, "<title>Dated &amp; done</title>")
	assert.Contains(t, s, `<guid isPermaLink="false">4bQf2</guid>`)
	assert.Contains(t, s, "<pubDate>Wed, 01 May 2024 09:00:00 +0200</pubDate>")
	assert.Contains(t, s, "<pubDate>Mon, 10 Jun 2024 15:04:05 +0000</pubDate>", "undated items fall back to build time")
	assert.Contains(t, s, "<description><![CDATA[Body &lt;b&gt; ]]]]><![CDATA[> end]]></description>")

	var parsed rss
	require.NoError(t, xml.Unmarshal(out, &parsed))
	require.Len(t, parsed.Channel.Items, 2)
	assert.Equal(t, "Dated & done", parsed.Channel.Items[0].Title)
	assert.Equal(t, "Undated", parsed.Channel.Items[1].Title)
	assert.Equal(t, "7xYz", parsed.Channel.Items[1].GUID.Value)
	assert.Equal(t, "Body &lt;b&gt; ]]> end", parsed.Channel.Items[0].Description.Text)
}

// Item order in the feed follows input order regardless of dates.
func TestRSS_PreservesOrder(t *testing.T) {
	items := []Item{
		{Title: "old", GUID: "1", Published: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "new", GUID: "2", Published: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "mid", GUID: "3", Published: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	out, err := RSS(Channel{Title: "t"}, items, buildTime)
	require.NoError(t, err)

	var parsed rss
	require.NoError(t, xml.Unmarshal(out, &parsed))
	got := make([]string, 0, len(parsed.Channel.Items))
	for _, it := range parsed.Channel.Items {
		got = append(got, it.GUID.Value)
	}
	assert.Equal(t, []string{"1", "2", "3"}, got)
}

func TestRSS_Empty(t *testing.T) {
	out, err := RSS(Channel{Title: "t", Link: "l"}, nil, buildTime)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<item>")
}
