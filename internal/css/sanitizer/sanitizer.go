// Package sanitizer neutralizes markup embedded in user-submitted CSS while
// keeping legitimate CSS syntax intact, notably the angle-bracket component
// names (<angle>, <length>, <color>) used by @property syntax descriptors.
//
// The filter is best effort: it removes complete denylisted tag blocks and
// any leftover <...> construct, and it protects <ident> tokens that sit
// inside a @property syntax descriptor value. It is not a full HTML parser
// and not a security boundary against every conceivable injection; output
// embedded in HTML must still be escaped by the renderer.
package sanitizer

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
)

// blockedTags are elements whose complete <tag ...>...</tag> blocks are
// removed, content included.
var blockedTags = []string{"script", "style", "noscript", "iframe", "object", "embed"}

var (
	blockedTagPatterns = compileBlockedTagPatterns()

	// angleIdent matches HTML-tag-like tokens such as <div> as well as CSS
	// syntax component names such as <angle> or <my-type>.
	angleIdent = regexp.MustCompile(`<([A-Za-z_-][A-Za-z0-9_-]*)>`)

	// tagName captures the element name of any tag-like construct,
	// attributes and closing slashes included.
	tagName = regexp.MustCompile(`<\s*/?\s*([A-Za-z][A-Za-z0-9]*)`)

	// genericTag strips whatever tag-like text survives the earlier phases.
	genericTag = regexp.MustCompile(`<[^>]*>`)

	// syntaxDescriptor finds "syntax:" descriptor heads. Whitespace before
	// the colon is legal CSS, so it is tolerated here.
	syntaxDescriptor = regexp.MustCompile(`(?i)syntax\s*:`)
)

// RE2 has no backreferences, so each blocked element gets its own pattern.
func compileBlockedTagPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(blockedTags))
	for _, tag := range blockedTags {
		patterns = append(patterns, regexp.MustCompile(`(?is)<`+tag+`\b[^>]*>.*?</\s*`+tag+`\s*>`))
	}
	return patterns
}

// Sanitize strips dangerous markup from raw CSS text. Empty input returns
// the empty string. The function is pure and total: malformed input degrades
// by removing less (or more) markup, never by failing.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}

	text := strings.TrimSpace(raw)
	text = strings.ReplaceAll(text, "\x00", "")
	if text == "" {
		return ""
	}

	for _, pattern := range blockedTagPatterns {
		text = pattern.ReplaceAllString(text, "")
	}

	text, placeholders := protectSyntaxComponents(text)
	text = genericTag.ReplaceAllString(text, "")

	for token, original := range placeholders {
		text = strings.Replace(text, token, original, 1)
	}
	return text
}

// protectSyntaxComponents replaces every <ident> that sits inside a
// @property syntax descriptor with a unique placeholder so the generic tag
// strip cannot damage it. The returned table maps each placeholder back to
// its original text and is scoped to this call.
func protectSyntaxComponents(text string) (string, map[string]string) {
	matches := angleIdent.FindAllStringIndex(text, -1)
	if matches == nil {
		return text, nil
	}

	var (
		table   map[string]string
		out     strings.Builder
		last    int
		counter int
	)
	for _, m := range matches {
		start, end := m[0], m[1]
		if !inSyntaxDescriptor(text, start) {
			continue
		}
		token := newToken(&counter, text)
		if table == nil {
			table = make(map[string]string)
			out.Grow(len(text))
		}
		table[token] = text[start:end]
		out.WriteString(text[last:start])
		out.WriteString(token)
		last = end
	}
	if table == nil {
		return text, nil
	}
	out.WriteString(text[last:])
	return out.String(), table
}

// inSyntaxDescriptor reports whether pos is inside the value of a @property
// rule's syntax descriptor: an earlier @property, a syntax descriptor head
// after it and before pos, and no ';' or '}' between that head and pos.
//
// Being a recognized HTML tag name does not veto preservation; the
// descriptor context wins. Conversely nothing outside a descriptor is ever
// preserved, not even non-HTML identifiers like <my-custom-type>.
func inSyntaxDescriptor(text string, pos int) bool {
	head := text[:pos]
	locs := syntaxDescriptor.FindAllStringIndex(head, -1)
	if len(locs) == 0 {
		return false
	}
	// Only the nearest descriptor head matters: any earlier one spans a
	// superset of the text and would hit the same terminator.
	nearest := locs[len(locs)-1]
	if !strings.Contains(strings.ToLower(head[:nearest[0]]), "@property") {
		return false
	}
	return !strings.ContainsAny(head[nearest[1]:], ";}")
}

const (
	tokenPrefix = "__css_keep_"
	tokenSuffix = "__"
)

// newToken generates a placeholder that cannot collide with document text:
// a monotonic base36 counter plus four random bytes, re-rolled in the
// unlikely event the document already contains it.
func newToken(counter *int, text string) string {
	for {
		var buf [4]byte
		_, _ = rand.Read(buf[:])
		token := tokenPrefix + strconv.FormatInt(int64(*counter), 36) + "_" + hex.EncodeToString(buf[:]) + tokenSuffix
		*counter++
		if !strings.Contains(text, token) {
			return token
		}
	}
}

// RemovedTags reports which recognized HTML tag names a Sanitize pass would
// strip from raw, in first-seen order without duplicates. Tokens protected
// by a syntax descriptor are not counted. Used for operator feedback after
// a save; it has no effect on sanitization itself.
func RemovedTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var (
		seen map[string]bool
		out  []string
	)
	for _, m := range tagName.FindAllStringSubmatchIndex(raw, -1) {
		name := strings.ToLower(raw[m[2]:m[3]])
		if !IsStandardTag(name) || seen[name] {
			continue
		}
		if inSyntaxDescriptor(raw, m[0]) {
			continue
		}
		if seen == nil {
			seen = make(map[string]bool)
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
