package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello-world"},
		{"  --Already-Slugged--  ", "already-slugged"},
		{"Crème Brûlée à la carte", "creme-brulee-a-la-carte"},
		{"Straße & Smørrebrød", "strasse-smorrebrod"},
		{"Patch 1.2.3 notes", "patch-1-2-3-notes"},
		{"multiple   spaces\tand\nlines", "multiple-spaces-and-lines"},
		{"ÜBER", "uber"},
		{"日本語", ""},
		{"Game 日本 launch", "game-launch"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	inputs := []string{
		"Hello, World!", "a--b", "-x-", "Ünïcödé Tëxt", "ß", "v2.0 — release",
		"  ", "ALL CAPS", "mixed_Under_score", "9 Lives", "Æon Flux", "áb",
	}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "input %q", in)
		assert.Regexp(t, `^([a-z0-9]+(-[a-z0-9]+)*)?$`, once)
	}
}

func TestDerive(t *testing.T) {
	assert.Equal(t, "custom", Derive("Custom", "Title", "id1"))
	assert.Equal(t, "hello-world", Derive("", "Hello, World!", "id1"))
	assert.Equal(t, "hello-world", Derive("!!!", "Hello, World!", "id1"))
	assert.Equal(t, "4bqf2xyz", Derive("", "", "4bQf2xyz"))
	assert.Equal(t, "4bqf2xyz", Derive("", "日本語", "4bQf2xyz"))
	assert.Equal(t, Fallback, Derive("", "", ""))
}

func TestResolver_Duplicates(t *testing.T) {
	r := NewResolver()
	assert.Equal(t, "launch", r.Resolve("", "Launch", "a"))
	assert.Equal(t, "launch-2", r.Resolve("", "Launch!", "b"))
	assert.Equal(t, "launch-3", r.Resolve("launch", "", "c"))
	assert.Equal(t, "other", r.Resolve("", "Other", "d"))
}

func TestResolver_SuffixCollision(t *testing.T) {
	r := NewResolver()
	assert.Equal(t, "news-2", r.Resolve("news-2", "", "a"))
	assert.Equal(t, "news", r.Resolve("news", "", "b"))
	assert.Equal(t, "news-3", r.Resolve("news", "", "c"))
}
