package richtext

import (
	"html"
	"strconv"
	"strings"
)

// Media is a resolved embedded image. Width and Height are zero when unknown.
type Media struct {
	URL         string
	Title       string
	Description string
	Width       int
	Height      int
}

// MediaResolver resolves embedded-media references by asset ID.
type MediaResolver interface {
	ResolveMedia(id string) (Media, bool)
}

// Renderer converts Documents to HTML fragments.
type Renderer struct {
	media MediaResolver
}

// NewRenderer returns a Renderer. A nil resolver renders every embedded
// media node as empty output.
func NewRenderer(media MediaResolver) *Renderer {
	return &Renderer{media: media}
}

// Render returns the HTML for doc. It never fails.
func (r *Renderer) Render(doc Document) string {
	var b strings.Builder
	r.renderNodes(&b, doc.Nodes)
	return b.String()
}

func (r *Renderer) renderNodes(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		r.renderNode(b, n)
	}
}

func (r *Renderer) renderNode(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case Text:
		b.WriteString(renderText(n))
	case Paragraph:
		r.wrap(b, "p", n.Children)
	case Heading:
		r.wrap(b, "h"+strconv.Itoa(clampLevel(n.Level)), n.Children)
	case UnorderedList:
		r.wrap(b, "ul", n.Children)
	case OrderedList:
		r.wrap(b, "ol", n.Children)
	case ListItem:
		r.wrap(b, "li", n.Children)
	case Blockquote:
		r.wrap(b, "blockquote", n.Children)
	case HorizontalRule:
		b.WriteString("<hr>")
	case Hyperlink:
		r.renderLink(b, n)
	case EmbeddedMedia:
		r.renderMedia(b, n)
	default:
		// Kinds without dedicated markup contribute only their children.
		if c, ok := n.(container); ok {
			r.renderNodes(b, c.children())
		}
	}
}

func (r *Renderer) wrap(b *strings.Builder, tag string, children []Node) {
	b.WriteString("<" + tag + ">")
	r.renderNodes(b, children)
	b.WriteString("</" + tag + ">")
}

func (r *Renderer) renderLink(b *strings.Builder, n Hyperlink) {
	uri := n.URI
	if strings.TrimSpace(uri) == "" {
		uri = "#"
	}
	b.WriteString(`<a href="`)
	b.WriteString(html.EscapeString(uri))
	b.WriteString(`" target="_blank" rel="noopener noreferrer">`)
	r.renderNodes(b, n.Children)
	b.WriteString("</a>")
}

func (r *Renderer) renderMedia(b *strings.Builder, n EmbeddedMedia) {
	if r.media == nil || n.AssetID == "" {
		return
	}
	m, ok := r.media.ResolveMedia(n.AssetID)
	if !ok || m.URL == "" {
		return
	}
	b.WriteString("<figure>")
	b.WriteString(ImageTag(m, `loading="lazy"`))
	b.WriteString("</figure>")
}

// ImageTag renders an <img> for m. Width and height are emitted only when
// both are known. extra is inserted verbatim before the size attributes.
func ImageTag(m Media, extra string) string {
	var b strings.Builder
	b.WriteString(`<img src="`)
	b.WriteString(html.EscapeString(m.URL))
	b.WriteString(`" alt="`)
	b.WriteString(html.EscapeString(AltText(m)))
	b.WriteString(`"`)
	if extra != "" {
		b.WriteString(" " + extra)
	}
	if m.Width > 0 && m.Height > 0 {
		b.WriteString(` width="` + strconv.Itoa(m.Width) + `" height="` + strconv.Itoa(m.Height) + `"`)
	}
	b.WriteString(">")
	return b.String()
}

// AltText falls back from title to description to empty.
func AltText(m Media) string {
	if m.Title != "" {
		return m.Title
	}
	return m.Description
}

var markTags = map[Mark]string{
	MarkBold:      "strong",
	MarkItalic:    "em",
	MarkUnderline: "u",
	MarkCode:      "code",
}

// renderText escapes the value, then wraps it once per mark in declared order.
func renderText(n Text) string {
	s := html.EscapeString(n.Value)
	for _, m := range n.Marks {
		tag, ok := markTags[m]
		if !ok {
			continue
		}
		s = "<" + tag + ">" + s + "</" + tag + ">"
	}
	return s
}

func clampLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > 6:
		return 6
	default:
		return level
	}
}
