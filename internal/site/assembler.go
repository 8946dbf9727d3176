package site

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/admin-esegames/esegames-site/internal/assets"
	"github.com/admin-esegames/esegames-site/internal/contentful"
	"github.com/admin-esegames/esegames-site/internal/richtext"
	"github.com/admin-esegames/esegames-site/internal/slug"
)

// Options carries the site identity and layout the pages are built for.
type Options struct {
	BaseURL           string // absolute, e.g. https://example.com
	SiteName          string
	Language          string
	Organization      string
	Logo              string // absolute or root-relative URL
	ArticlesDir       string // directory under the output root, e.g. "news"
	ListingURL        string // root-relative listing URL, e.g. "/news.html"
	LeadParagraphs    int
	DescriptionLength int
}

// Article is an entry with everything needed to link to and render it.
type Article struct {
	Entry contentful.Entry
	Slug  string
	Path  string // root-relative, e.g. /news/launch/
	URL   string // absolute canonical URL
	Hero  assets.Asset
	// HasHero is false when the entry has no hero reference or it did not resolve.
	HasHero bool
}

// Assembler renders listing cards and article pages.
type Assembler struct {
	opts     Options
	assets   assets.Index
	renderer *richtext.Renderer
}

func NewAssembler(opts Options, idx assets.Index) *Assembler {
	if opts.ArticlesDir == "" {
		opts.ArticlesDir = "news"
	}
	opts.ArticlesDir = strings.Trim(opts.ArticlesDir, "/")
	opts.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
	opts.ListingURL = rootRelative(opts.ListingURL)
	return &Assembler{opts: opts, assets: idx, renderer: richtext.NewRenderer(idx)}
}

// Options returns the normalized options.
func (a *Assembler) Options() Options { return a.opts }

// Prepare assigns unique slugs in entry order and resolves hero images.
func (a *Assembler) Prepare(entries []contentful.Entry) []Article {
	resolver := slug.NewResolver()
	out := make([]Article, 0, len(entries))
	for _, e := range entries {
		s := resolver.Resolve(e.Slug, e.Title, e.ID)
		p := "/" + path.Join(a.opts.ArticlesDir, s) + "/"
		art := Article{
			Entry: e,
			Slug:  s,
			Path:  p,
			URL:   a.AbsoluteURL(p),
		}
		if e.HeroMedia != "" {
			if hero, ok := a.assets.Lookup(e.HeroMedia); ok && hero.URL != "" {
				art.Hero, art.HasHero = hero, true
			}
		}
		out = append(out, art)
	}
	return out
}

// AbsoluteURL joins a root-relative path onto the base URL.
func (a *Assembler) AbsoluteURL(rootPath string) string {
	return a.opts.BaseURL + rootRelative(rootPath)
}

// ListingAbsoluteURL is the canonical URL of the listing page.
func (a *Assembler) ListingAbsoluteURL() string {
	return a.AbsoluteURL(a.opts.ListingURL)
}

// ArticleFile is the output path of art's page below outputDir.
func (a *Assembler) ArticleFile(outputDir string, art Article) string {
	return filepath.Join(outputDir, filepath.FromSlash(a.opts.ArticlesDir), art.Slug, "index.html")
}

// heroMedia is the hero as an image, with the entry title as the alt text
// of last resort.
func heroMedia(art Article) richtext.Media {
	m := art.Hero.Media()
	if richtext.AltText(m) == "" {
		m.Title = art.Entry.Title
	}
	return m
}
