package site

import (
	"encoding/json"
	"html"
	"strings"
	"time"

	"github.com/admin-esegames/esegames-site/internal/foundation/errors"
	"github.com/admin-esegames/esegames-site/internal/richtext"
)

type organizationLD struct {
	Type string         `json:"@type"`
	Name string         `json:"name"`
	URL  string         `json:"url,omitempty"`
	Logo *imageObjectLD `json:"logo,omitempty"`
}

type imageObjectLD struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type newsArticleLD struct {
	Context          string          `json:"@context"`
	Type             string          `json:"@type"`
	Headline         string          `json:"headline"`
	DatePublished    string          `json:"datePublished,omitempty"`
	DateModified     string          `json:"dateModified,omitempty"`
	Image            []string        `json:"image,omitempty"`
	MainEntityOfPage string          `json:"mainEntityOfPage"`
	Author           *organizationLD `json:"author"`
	Publisher        *organizationLD `json:"publisher"`
}

// LinkedData returns the schema.org NewsArticle JSON for art. The encoder's
// HTML escaping keeps the output safe inside a script element.
func (a *Assembler) LinkedData(art Article) (string, error) {
	org := &organizationLD{Type: "Organization", Name: a.organization(), URL: a.opts.BaseURL}
	if a.opts.Logo != "" {
		logo := a.opts.Logo
		if strings.HasPrefix(logo, "/") && !strings.HasPrefix(logo, "//") {
			logo = a.AbsoluteURL(logo)
		}
		org.Logo = &imageObjectLD{Type: "ImageObject", URL: logo}
	}

	ld := newsArticleLD{
		Context:          "https://schema.org",
		Type:             "NewsArticle",
		Headline:         art.Entry.Title,
		MainEntityOfPage: art.URL,
		Author:           org,
		Publisher:        org,
	}
	if art.Entry.HasDate() {
		ld.DatePublished = art.Entry.Date.UTC().Format(time.RFC3339)
	}
	switch {
	case !art.Entry.UpdatedAt.IsZero():
		ld.DateModified = art.Entry.UpdatedAt.UTC().Format(time.RFC3339)
	case art.Entry.HasDate():
		ld.DateModified = ld.DatePublished
	}
	if art.HasHero {
		ld.Image = []string{art.Hero.URL}
	}

	data, err := json.Marshal(ld)
	if err != nil {
		return "", errors.RenderError("failed to encode linked data").WithCause(err).
			WithContext("entry_id", art.Entry.ID).
			Build()
	}
	return string(data), nil
}

func (a *Assembler) organization() string {
	if a.opts.Organization != "" {
		return a.opts.Organization
	}
	return a.opts.SiteName
}

// RenderArticle renders the standalone page for art using the shared chrome.
func (a *Assembler) RenderArticle(art Article, chrome Chrome) (string, error) {
	ld, err := a.LinkedData(art)
	if err != nil {
		return "", err
	}

	title := html.EscapeString(art.Entry.Title)
	pageTitle := title
	if a.opts.SiteName != "" {
		pageTitle += " | " + html.EscapeString(a.opts.SiteName)
	}
	canonical := html.EscapeString(art.URL)
	description := richtext.PlainText(art.Entry.Body, a.opts.DescriptionLength)
	lang := a.opts.Language
	if lang == "" {
		lang = "en"
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(`<html lang="` + html.EscapeString(lang) + `">` + "\n<head>\n")
	b.WriteString(`<meta charset="utf-8">` + "\n")
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	b.WriteString("<title>" + pageTitle + "</title>\n")
	b.WriteString(`<link rel="canonical" href="` + canonical + `">` + "\n")
	b.WriteString(`<meta name="description" content="` + description + `">` + "\n")
	writeMeta(&b, "og:type", "article")
	writeMeta(&b, "og:title", title)
	writeMeta(&b, "og:description", description)
	writeMeta(&b, "og:url", canonical)
	if a.opts.SiteName != "" {
		writeMeta(&b, "og:site_name", html.EscapeString(a.opts.SiteName))
	}
	if art.HasHero {
		writeMeta(&b, "og:image", html.EscapeString(art.Hero.URL))
	}
	if art.Entry.HasDate() {
		writeMeta(&b, "article:published_time", art.Entry.Date.UTC().Format(time.RFC3339))
	}
	if chrome.HeadLinks != "" {
		b.WriteString(chrome.HeadLinks + "\n")
	}
	b.WriteString(`<script type="application/ld+json">` + ld + "</script>\n")
	b.WriteString("</head>\n<body>\n")

	if chrome.Header != "" {
		b.WriteString(chrome.Header + "\n")
	}
	b.WriteString(`<main class="news-article">` + "\n<article>\n")
	b.WriteString(`<h1 class="news-article__title">` + title + "</h1>\n")
	if art.Entry.HasDate() {
		b.WriteString(timeTag("news-article__date", art.Entry.Date) + "\n")
	}
	if art.HasHero {
		b.WriteString(`<figure class="news-article__hero">`)
		b.WriteString(richtext.ImageTag(heroMedia(art), `loading="eager" fetchpriority="high"`))
		b.WriteString("</figure>\n")
	}
	b.WriteString(`<div class="news-article__body">` + a.renderer.Render(art.Entry.Body) + "</div>\n")
	if art.Entry.Link != "" {
		b.WriteString(`<p class="news-article__source">` +
			sourceLink("news-article__source-link", art.Entry.Link, "Read the original") + "</p>\n")
	}
	b.WriteString(`<p class="news-article__back"><a href="` + html.EscapeString(a.opts.ListingURL) + `">Back to news</a></p>` + "\n")
	b.WriteString("</article>\n</main>\n")
	if chrome.Footer != "" {
		b.WriteString(chrome.Footer + "\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

// writeMeta writes an Open Graph style property. content must already be escaped.
func writeMeta(b *strings.Builder, property, content string) {
	b.WriteString(`<meta property="` + property + `" content="` + content + `">` + "\n")
}
