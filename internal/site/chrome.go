package site

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/admin-esegames/esegames-site/internal/foundation/errors"
)

// Chrome is the shared page furniture borrowed from the listing template.
type Chrome struct {
	Header    string
	Footer    string
	HeadLinks string
	// Missing names the landmarks that were not found.
	Missing []string
}

// urlAttrs are rewritten so they resolve from article directories.
var urlAttrs = map[string]bool{"href": true, "src": true, "poster": true, "action": true}

// ExtractChrome finds the first <header> and <footer> elements and the
// stylesheet and icon links in <head>. Relative URLs inside them are
// resolved against listingURL, a root-relative path such as "/news.html",
// so the fragments work from any directory.
func ExtractChrome(content, listingURL string) (Chrome, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return Chrome{}, errors.WrapError(err, errors.CategoryTemplate, "failed to parse listing template").Build()
	}
	base, err := url.Parse(rootRelative(listingURL))
	if err != nil {
		return Chrome{}, errors.WrapError(err, errors.CategoryConfig, "invalid listing URL").
			WithContext("listing_url", listingURL).
			Build()
	}

	var header, footer *html.Node
	var links []*html.Node
	var walk func(n *html.Node, inHead bool)
	walk = func(n *html.Node, inHead bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "head":
				inHead = true
			case "header":
				if header == nil {
					header = n
					return
				}
			case "footer":
				if footer == nil {
					footer = n
					return
				}
			case "link":
				if inHead && isChromeLink(getAttr(n, "rel")) {
					links = append(links, n)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inHead)
		}
	}
	walk(doc, false)

	var chrome Chrome
	if header == nil {
		chrome.Missing = append(chrome.Missing, "header")
	} else if chrome.Header, err = renderRewritten(header, base); err != nil {
		return Chrome{}, err
	}
	if footer == nil {
		chrome.Missing = append(chrome.Missing, "footer")
	} else if chrome.Footer, err = renderRewritten(footer, base); err != nil {
		return Chrome{}, err
	}

	parts := make([]string, 0, len(links))
	for _, l := range links {
		s, err := renderRewritten(l, base)
		if err != nil {
			return Chrome{}, err
		}
		parts = append(parts, s)
	}
	chrome.HeadLinks = strings.Join(parts, "\n")
	return chrome, nil
}

func isChromeLink(rel string) bool {
	for _, token := range strings.Fields(strings.ToLower(rel)) {
		if token == "stylesheet" || token == "icon" || token == "apple-touch-icon" || token == "manifest" {
			return true
		}
	}
	return false
}

// renderRewritten rewrites URL attributes in n's subtree and serializes it.
func renderRewritten(n *html.Node, base *url.URL) (string, error) {
	rewriteTree(n, base)
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", errors.RenderError("failed to render template fragment").WithCause(err).Build()
	}
	return b.String(), nil
}

func rewriteTree(n *html.Node, base *url.URL) {
	if n.Type == html.ElementNode {
		for i, attr := range n.Attr {
			if attr.Namespace == "" && urlAttrs[attr.Key] {
				n.Attr[i].Val = rewriteURL(base, attr.Val)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteTree(c, base)
	}
}

// rewriteURL makes a document-relative reference root-relative. Absolute,
// protocol-relative, root-relative, and fragment-only references are kept.
func rewriteURL(base *url.URL, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "/") {
		return raw
	}
	ref, err := url.Parse(trimmed)
	if err != nil || ref.IsAbs() || ref.Host != "" {
		return raw
	}
	return base.ResolveReference(ref).String()
}

// rootRelative turns "news.html" or "" into "/news.html" or "/".
func rootRelative(p string) string {
	p = strings.TrimSpace(p)
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
