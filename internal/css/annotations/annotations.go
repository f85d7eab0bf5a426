// Package annotations extracts @class-manager declarations from CSS
// comments. Authors document reusable utility classes next to their rules:
//
//	/* @class-manager flex-row | Flex row with gap. */
//	.flex-row { display: flex; gap: 8px; }
//
// and the extractor surfaces the declared names to the class registry.
package annotations

import (
	"regexp"
	"strings"
)

// Tag is the comment marker that declares a utility class.
const Tag = "@class-manager"

// Record is one declared class: a valid CSS class identifier and an
// optional human description. Records are rebuilt from the document on
// every extraction and never persisted here.
type Record struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// className is the accepted identifier grammar: ASCII, no leading digit.
var className = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Extract returns every valid declaration found in css comment blocks, in
// document order. Duplicates are preserved; deduplication belongs to the
// consumer. Malformed input yields fewer records, never an error.
func Extract(css string) []Record {
	if css == "" {
		return nil
	}
	var records []Record
	for _, body := range commentBlocks(css) {
		for _, line := range strings.Split(body, "\n") {
			if rec, ok := parseLine(line); ok {
				records = append(records, rec)
			}
		}
	}
	return records
}

// commentBlocks returns the interior of every /* ... */ block. The scan is
// an explicit two-state pass over the bytes, so a lone '*' inside a comment
// cannot end it early and adversarial input stays linear. An unterminated
// comment contributes nothing.
func commentBlocks(css string) []string {
	var (
		blocks    []string
		inComment bool
		start     int
	)
	for i := 0; i < len(css); i++ {
		if !inComment {
			if css[i] == '/' && i+1 < len(css) && css[i+1] == '*' {
				inComment = true
				start = i + 2
				i++
			}
			continue
		}
		if css[i] == '*' && i+1 < len(css) && css[i+1] == '/' {
			blocks = append(blocks, css[start:i])
			inComment = false
			i++
		}
	}
	return blocks
}

// parseLine matches one comment line against the tag grammar: an optional
// '*' continuation marker, the literal tag, at least one whitespace
// character, then "name | description" with the description optional.
func parseLine(line string) (Record, bool) {
	line = strings.TrimSpace(line)
	line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
	if !strings.HasPrefix(line, Tag) {
		return Record{}, false
	}
	rest := line[len(Tag):]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		// A bare tag, or a longer token that merely starts with it.
		return Record{}, false
	}

	name, desc := rest, ""
	if idx := strings.IndexByte(rest, '|'); idx >= 0 {
		name, desc = rest[:idx], rest[idx+1:]
	}
	name = strings.TrimSpace(name)
	desc = strings.TrimSpace(desc)
	if !className.MatchString(name) {
		return Record{}, false
	}
	return Record{Name: name, Description: desc}, true
}
