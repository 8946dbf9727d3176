package richtext

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// wireNode is the content API's JSON shape for every rich-text node.
type wireNode struct {
	NodeType string     `json:"nodeType"`
	Value    string     `json:"value"`
	Marks    []wireMark `json:"marks"`
	Data     wireData   `json:"data"`
	Content  []wireNode `json:"content"`
}

type wireMark struct {
	Type string `json:"type"`
}

type wireData struct {
	URI    string    `json:"uri"`
	Target *wireLink `json:"target"`
}

type wireLink struct {
	Sys struct {
		ID string `json:"id"`
	} `json:"sys"`
}

// Decode builds a Document from the wire JSON. An absent or null field
// decodes to an empty Document. A root that is not a "document" node is kept
// as the single top-level node.
func Decode(raw []byte) (Document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Document{}, nil
	}

	var root wireNode
	if err := json.Unmarshal(trimmed, &root); err != nil {
		return Document{}, fmt.Errorf("decode rich text: %w", err)
	}
	if root.NodeType == "document" {
		return Document{Nodes: convertAll(root.Content)}, nil
	}
	return Document{Nodes: []Node{convert(root)}}, nil
}

func convertAll(in []wireNode) []Node {
	if len(in) == 0 {
		return nil
	}
	out := make([]Node, 0, len(in))
	for _, w := range in {
		out = append(out, convert(w))
	}
	return out
}

func convert(w wireNode) Node {
	switch w.NodeType {
	case "text":
		return Text{Value: w.Value, Marks: convertMarks(w.Marks)}
	case "paragraph":
		return Paragraph{Children: convertAll(w.Content)}
	case "unordered-list":
		return UnorderedList{Children: convertAll(w.Content)}
	case "ordered-list":
		return OrderedList{Children: convertAll(w.Content)}
	case "list-item":
		return ListItem{Children: convertAll(w.Content)}
	case "blockquote":
		return Blockquote{Children: convertAll(w.Content)}
	case "hr":
		return HorizontalRule{}
	case "hyperlink":
		return Hyperlink{URI: w.Data.URI, Children: convertAll(w.Content)}
	case "embedded-asset-block":
		var id string
		if w.Data.Target != nil {
			id = w.Data.Target.Sys.ID
		}
		return EmbeddedMedia{AssetID: id}
	}
	if level, ok := headingLevel(w.NodeType); ok {
		return Heading{Level: level, Children: convertAll(w.Content)}
	}
	return Unknown{NodeType: w.NodeType, Children: convertAll(w.Content)}
}

// headingLevel parses "heading-1" .. "heading-6".
func headingLevel(nodeType string) (int, bool) {
	rest, ok := strings.CutPrefix(nodeType, "heading-")
	if !ok {
		return 0, false
	}
	level, err := strconv.Atoi(rest)
	if err != nil || level < 1 || level > 6 {
		return 0, false
	}
	return level, true
}

// convertMarks keeps the recognised marks in declared order and drops the rest.
func convertMarks(in []wireMark) []Mark {
	var out []Mark
	for _, m := range in {
		switch Mark(m.Type) {
		case MarkBold, MarkItalic, MarkUnderline, MarkCode:
			out = append(out, Mark(m.Type))
		}
	}
	return out
}
