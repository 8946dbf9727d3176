package testing

import (
	"encoding/json"
	"testing"
)

// PayloadBuilder assembles an entries response.
type PayloadBuilder struct {
	items  []map[string]any
	assets []map[string]any
}

func NewPayload() *PayloadBuilder { return &PayloadBuilder{} }

// Entry appends an entry with the given fields.
func (b *PayloadBuilder) Entry(id string, fields map[string]any) *PayloadBuilder {
	b.items = append(b.items, map[string]any{
		"sys":    map[string]any{"id": id, "type": "Entry"},
		"fields": fields,
	})
	return b
}

// Asset appends an included image asset. Zero dimensions are omitted.
func (b *PayloadBuilder) Asset(id, title, url string, width, height int) *PayloadBuilder {
	file := map[string]any{"url": url, "contentType": "image/jpeg"}
	if width > 0 || height > 0 {
		file["details"] = map[string]any{"image": map[string]any{"width": width, "height": height}}
	}
	b.assets = append(b.assets, map[string]any{
		"sys":    map[string]any{"id": id, "type": "Asset"},
		"fields": map[string]any{"title": title, "file": file},
	})
	return b
}

// JSON encodes the payload.
func (b *PayloadBuilder) JSON(t *testing.T) string {
	t.Helper()
	items := b.items
	if items == nil {
		items = []map[string]any{}
	}
	assets := b.assets
	if assets == nil {
		assets = []map[string]any{}
	}
	data, err := json.Marshal(map[string]any{
		"total":    len(items),
		"items":    items,
		"includes": map[string]any{"Asset": assets},
	})
	if err != nil {
		t.Fatalf("Failed to encode payload: %v", err)
	}
	return string(data)
}

// AssetLink is the field value referencing an asset.
func AssetLink(id string) map[string]any {
	return map[string]any{"sys": map[string]any{"id": id, "type": "Link", "linkType": "Asset"}}
}

// Paragraphs is a rich text document with one plain paragraph per text.
func Paragraphs(texts ...string) map[string]any {
	content := make([]any, 0, len(texts))
	for _, text := range texts {
		content = append(content, map[string]any{
			"nodeType": "paragraph",
			"content": []any{map[string]any{
				"nodeType": "text",
				"value":    text,
				"marks":    []any{},
			}},
		})
	}
	return map[string]any{"nodeType": "document", "content": content}
}
