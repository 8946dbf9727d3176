package site

import (
	"html"
	"strings"
	"time"

	"github.com/admin-esegames/esegames-site/internal/richtext"
)

const displayDateLayout = "January 2, 2006"

// RenderCards renders one card per article in order. Only the first card's
// hero image is loaded eagerly.
func (a *Assembler) RenderCards(articles []Article) string {
	var b strings.Builder
	for i, art := range articles {
		a.renderCard(&b, art, i == 0)
	}
	return b.String()
}

func (a *Assembler) renderCard(b *strings.Builder, art Article, first bool) {
	href := html.EscapeString(art.Path)
	title := html.EscapeString(art.Entry.Title)

	b.WriteString(`<article class="news-card">` + "\n")
	if art.HasHero {
		loading := `loading="lazy"`
		if first {
			loading = `loading="eager" fetchpriority="high"`
		}
		b.WriteString(`<a class="news-card__media" href="` + href + `">`)
		b.WriteString(richtext.ImageTag(heroMedia(art), loading))
		b.WriteString("</a>\n")
	}
	b.WriteString(`<div class="news-card__body">` + "\n")
	b.WriteString(`<h2 class="news-card__title"><a href="` + href + `">` + title + "</a></h2>\n")
	if art.Entry.HasDate() {
		b.WriteString(timeTag("news-card__date", art.Entry.Date))
		b.WriteString("\n")
	}

	lead, rest := richtext.SplitLead(art.Entry.Body, a.opts.LeadParagraphs)
	b.WriteString(`<div class="news-card__lead">` + a.renderer.Render(lead) + "</div>\n")
	if !rest.IsEmpty() {
		b.WriteString(`<details class="news-card__more"><summary>Read more</summary>` + "\n")
		b.WriteString(a.renderer.Render(rest))
		b.WriteString("\n</details>\n")
	}
	if art.Entry.Link != "" {
		b.WriteString(sourceLink("news-card__source", art.Entry.Link, "Source"))
		b.WriteString("\n")
	}
	b.WriteString("</div>\n</article>\n")
}

func timeTag(class string, t time.Time) string {
	return `<time class="` + class + `" datetime="` + t.UTC().Format(time.RFC3339) + `">` +
		html.EscapeString(t.Format(displayDateLayout)) + "</time>"
}

func sourceLink(class, href, text string) string {
	return `<a class="` + class + `" href="` + html.EscapeString(href) +
		`" target="_blank" rel="noopener noreferrer">` + html.EscapeString(text) + "</a>"
}
