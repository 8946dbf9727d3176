// Package feed encodes the sitemap and the RSS 2.0 feed for the news section.
package feed

import (
	"bytes"
	"encoding/xml"
	"time"

	"github.com/admin-esegames/esegames-site/internal/foundation/errors"
)

const (
	sitemapNS   = "http://www.sitemaps.org/schemas/sitemap/0.9"
	atomNS      = "http://www.w3.org/2005/Atom"
	rssMIME     = "application/rss+xml"
	lastModDate = "2006-01-02"
)

// Item is one feed entry.
type Item struct {
	Title string
	URL   string
	// GUID is the entry's raw content ID; it is not a permalink.
	GUID string
	// Published may be zero; the build time is used instead.
	Published time.Time
	// Description is HTML-safe plain text.
	Description string
}

// Channel describes the feed itself.
type Channel struct {
	Title       string
	Link        string // listing page URL
	Description string
	Language    string
	SelfURL     string // absolute URL of the feed file
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

type rss struct {
	XMLName   xml.Name   `xml:"rss"`
	Version   string     `xml:"version,attr"`
	XmlnsAtom string     `xml:"xmlns:atom,attr"`
	Channel   rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate"`
	AtomLink      atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	GUID        rssGUID `xml:"guid"`
	PubDate     string  `xml:"pubDate"`
	Description cdata   `xml:"description"`
}

type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type cdata struct {
	Text string `xml:",cdata"`
}

// Sitemap lists listingURL followed by every article URL in order. All URLs
// carry the build date as lastmod.
func Sitemap(listingURL string, articleURLs []string, buildTime time.Time) ([]byte, error) {
	lastMod := buildTime.UTC().Format(lastModDate)
	set := urlset{Xmlns: sitemapNS, URLs: make([]sitemapURL, 0, len(articleURLs)+1)}
	set.URLs = append(set.URLs, sitemapURL{Loc: listingURL, LastMod: lastMod})
	for _, u := range articleURLs {
		set.URLs = append(set.URLs, sitemapURL{Loc: u, LastMod: lastMod})
	}
	return encode(&set, "sitemap")
}

// RSS encodes ch and items in order as an RSS 2.0 document.
func RSS(ch Channel, items []Item, buildTime time.Time) ([]byte, error) {
	doc := rss{
		Version:   "2.0",
		XmlnsAtom: atomNS,
		Channel: rssChannel{
			Title:         ch.Title,
			Link:          ch.Link,
			Description:   ch.Description,
			Language:      ch.Language,
			LastBuildDate: buildTime.Format(time.RFC1123Z),
			AtomLink:      atomLink{Href: ch.SelfURL, Rel: "self", Type: rssMIME},
			Items:         make([]rssItem, 0, len(items)),
		},
	}
	for _, it := range items {
		published := it.Published
		if published.IsZero() {
			published = buildTime
		}
		doc.Channel.Items = append(doc.Channel.Items, rssItem{
			Title:       it.Title,
			Link:        it.URL,
			GUID:        rssGUID{IsPermaLink: "false", Value: it.GUID},
			PubDate:     published.Format(time.RFC1123Z),
			Description: cdata{Text: it.Description},
		})
	}
	return encode(&doc, "feed")
}

func encode(v any, what string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	encoder := xml.NewEncoder(&buf)
	encoder.Indent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return nil, errors.RenderError("failed to encode " + what).WithCause(err).Build()
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.RenderError("failed to encode " + what).WithCause(err).Build()
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
