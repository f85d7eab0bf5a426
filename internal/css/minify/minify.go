// Package minify produces the published form of sanitized CSS: comments
// dropped, whitespace collapsed. Deployments can substitute their own
// implementation through the Minifier interface.
package minify

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Minifier turns authored CSS into the text written to the published file.
type Minifier interface {
	Minify(stylesheet string) string
}

// Func adapts a plain function to the Minifier interface.
type Func func(string) string

// Minify calls the underlying function.
func (f Func) Minify(stylesheet string) string { return f(stylesheet) }

// Default returns the built-in lexer-based minifier.
func Default() Minifier { return Func(Minify) }

// Minify removes comments and redundant whitespace from stylesheet text.
// Whitespace is dropped only where token boundaries make it redundant, so
// calc(100% - 10px), descendant selectors and media query conjunctions all
// survive. Strings and url() tokens pass through verbatim.
func Minify(stylesheet string) string {
	if stylesheet == "" {
		return ""
	}

	lexer := css.NewLexer(parse.NewInputString(stylesheet))
	var (
		out          strings.Builder
		last         byte
		pendingSpace bool
	)
	out.Grow(len(stylesheet))

	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return out.String()
		case css.CommentToken:
			// A comment can separate two word tokens, so it degrades to a
			// space rather than vanishing outright.
			if out.Len() > 0 {
				pendingSpace = true
			}
		case css.WhitespaceToken:
			if out.Len() > 0 {
				pendingSpace = true
			}
		default:
			tok := string(data)
			if tok == "" {
				continue
			}
			if pendingSpace && needsSpace(last, tok[0]) {
				out.WriteByte(' ')
			}
			pendingSpace = false
			out.WriteString(tok)
			last = tok[len(tok)-1]
		}
	}
}

// needsSpace reports whether whitespace between two tokens carries meaning.
// Dropping it is only safe next to punctuation that already separates
// tokens; in particular space before ':' stays (a :hover is a descendant
// selector, a:hover is not).
func needsSpace(prev, next byte) bool {
	switch prev {
	case '{', '}', ';', ':', ',', '(':
		return false
	}
	switch next {
	case '{', '}', ';', ',', ')':
		return false
	}
	return true
}
