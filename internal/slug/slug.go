// Package slug derives URL path segments for news entries.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is used when every source for a slug normalizes to empty.
const Fallback = "post"

// Letters that do not decompose into an ASCII base plus combining marks.
var transliterations = map[rune]string{
	'ß': "ss",
	'æ': "ae", 'Æ': "ae",
	'œ': "oe", 'Œ': "oe",
	'ø': "o", 'Ø': "o",
	'ł': "l", 'Ł': "l",
	'đ': "d", 'Đ': "d",
	'ð': "d", 'Ð': "d",
	'þ': "th", 'Þ': "th",
	'ı': "i",
}

// Slugify lowercases s, strips diacritics, and joins the remaining ASCII
// letter and digit runs with single hyphens. The result may be empty.
// Slugify is idempotent.
func Slugify(s string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), s)
	if err != nil {
		stripped = s
	}

	var b strings.Builder
	b.Grow(len(stripped))
	pendingHyphen := false
	emit := func(part string) {
		if pendingHyphen && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingHyphen = false
		b.WriteString(part)
	}
	for _, r := range stripped {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			emit(string(r))
		case r >= 'A' && r <= 'Z':
			emit(string(unicode.ToLower(r)))
		default:
			if t, ok := transliterations[r]; ok {
				emit(t)
				continue
			}
			pendingHyphen = true
		}
	}
	return b.String()
}

// Resolver assigns unique slugs within one build. Not safe for concurrent use.
type Resolver struct {
	used map[string]struct{}
}

func NewResolver() *Resolver {
	return &Resolver{used: make(map[string]struct{})}
}

// Resolve picks the first non-empty normalization of explicit, title, then
// id, and appends -2, -3, ... if that slug was already handed out.
func (r *Resolver) Resolve(explicit, title, id string) string {
	base := Derive(explicit, title, id)
	candidate := base
	for n := 2; ; n++ {
		if _, taken := r.used[candidate]; !taken {
			break
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
	r.used[candidate] = struct{}{}
	return candidate
}

// Derive returns the slug for one entry without de-duplication.
func Derive(explicit, title, id string) string {
	for _, src := range []string{explicit, title, id} {
		if s := Slugify(src); s != "" {
			return s
		}
	}
	return Fallback
}
