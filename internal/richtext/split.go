package richtext

import (
	"html"
	"strings"
	"unicode/utf8"
)

// SplitLead moves the first n paragraph nodes of doc into lead and every other
// top-level node, in original order, into rest.
func SplitLead(doc Document, n int) (lead, rest Document) {
	taken := 0
	for _, node := range doc.Nodes {
		if _, ok := node.(Paragraph); ok && taken < n {
			lead.Nodes = append(lead.Nodes, node)
			taken++
			continue
		}
		rest.Nodes = append(rest.Nodes, node)
	}
	return lead, rest
}

// PlainText concatenates all text values depth-first, truncates the result to
// maxLen characters, then HTML-escapes it. A non-positive maxLen yields "".
func PlainText(doc Document, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	c := textCollector{max: maxLen}
	c.walk(doc.Nodes)
	return html.EscapeString(truncateRunes(c.b.String(), maxLen))
}

type textCollector struct {
	b     strings.Builder
	runes int
	max   int
}

func (c *textCollector) full() bool {
	return c.runes >= c.max
}

// walk stops descending once max characters are buffered.
func (c *textCollector) walk(nodes []Node) {
	for _, n := range nodes {
		if c.full() {
			return
		}
		switch n := n.(type) {
		case Text:
			c.b.WriteString(n.Value)
			c.runes += utf8.RuneCountInString(n.Value)
		case container:
			c.walk(n.children())
		}
	}
}

func truncateRunes(s string, maxLen int) string {
	i := 0
	for pos := range s {
		if i == maxLen {
			return s[:pos]
		}
		i++
	}
	return s
}
