package sanitizer

import (
	"strings"
	"testing"
)

func TestSanitizeEmptyInput(t *testing.T) {
	if got := Sanitize(""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if got := Sanitize("   \n\t  "); got != "" {
		t.Fatalf("expected empty output for whitespace input, got %q", got)
	}
}

func TestSanitizePlainCSSUnchanged(t *testing.T) {
	input := "  .btn { color: red; }\n.card { margin: 0 auto; }  "
	want := strings.TrimSpace(input)
	if got := Sanitize(input); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSanitizeRemovesNulBytes(t *testing.T) {
	got := Sanitize("a{color:\x00red}")
	if got != "a{color:red}" {
		t.Fatalf("expected NUL removed, got %q", got)
	}
}

func TestSanitizeRemovesScriptBlock(t *testing.T) {
	got := Sanitize("a{}<script>alert(1)</script>b{}")
	if strings.Contains(got, "<script") {
		t.Fatalf("script tag survived: %q", got)
	}
	if strings.Contains(got, "alert(1)") {
		t.Fatalf("script body survived: %q", got)
	}
	if !strings.Contains(got, "a{}") || !strings.Contains(got, "b{}") {
		t.Fatalf("legitimate rules lost: %q", got)
	}
}

func TestSanitizeRemovesMultilineBlockWithAttributes(t *testing.T) {
	input := "a{}\n<ScRiPt type=\"text/javascript\">\nvar x = 1;\nalert(x);\n</script >\nb{}"
	got := Sanitize(input)
	if strings.Contains(strings.ToLower(got), "script") || strings.Contains(got, "alert") {
		t.Fatalf("block not fully removed: %q", got)
	}
}

func TestSanitizeRemovesAllDenylistedBlocks(t *testing.T) {
	for _, tag := range []string{"script", "style", "noscript", "iframe", "object", "embed"} {
		input := "h1{}<" + tag + ">payload</" + tag + ">h2{}"
		got := Sanitize(input)
		if strings.Contains(got, "payload") {
			t.Fatalf("%s block content survived: %q", tag, got)
		}
		if !strings.Contains(got, "h1{}") || !strings.Contains(got, "h2{}") {
			t.Fatalf("%s removal damaged surrounding CSS: %q", tag, got)
		}
	}
}

func TestSanitizePreservesPropertySyntaxComponent(t *testing.T) {
	input := `@property --rotation { syntax: "<angle>"; inherits: false; initial-value: 0deg; }`
	got := Sanitize(input)
	if !strings.Contains(got, "<angle>") {
		t.Fatalf("<angle> not preserved: %q", got)
	}
	if got != input {
		t.Fatalf("expected input unchanged, got %q", got)
	}
}

func TestSanitizePreservesCustomComponentName(t *testing.T) {
	input := `@property --x { syntax: "<my-type>"; }`
	if got := Sanitize(input); !strings.Contains(got, "<my-type>") {
		t.Fatalf("<my-type> not preserved: %q", got)
	}
}

func TestSanitizePreservesKnownTagNameInsideDescriptor(t *testing.T) {
	// <a> is an HTML tag name, but the descriptor context wins.
	input := `@property --weird { syntax: "<a>"; }`
	if got := Sanitize(input); !strings.Contains(got, "<a>") {
		t.Fatalf("descriptor context did not win for <a>: %q", got)
	}
}

func TestSanitizeStripsMarkupOutsideDescriptor(t *testing.T) {
	got := Sanitize("<div>text</div>")
	if got != "text" {
		t.Fatalf("expected %q, got %q", "text", got)
	}
}

func TestSanitizeStripsCustomComponentOutsideDescriptor(t *testing.T) {
	// Outside a syntax descriptor nothing is preserved, HTML-looking or not.
	got := Sanitize("a{} <my-custom-type> b{}")
	if strings.Contains(got, "<my-custom-type>") {
		t.Fatalf("non-descriptor token preserved: %q", got)
	}
}

func TestSanitizeSemicolonTerminatesDescriptor(t *testing.T) {
	input := `@property --x { syntax: "<angle>"; } <div>`
	got := Sanitize(input)
	if !strings.Contains(got, "<angle>") {
		t.Fatalf("<angle> not preserved: %q", got)
	}
	if strings.Contains(got, "<div>") {
		t.Fatalf("<div> after terminator preserved: %q", got)
	}
}

func TestSanitizeBraceTerminatesDescriptor(t *testing.T) {
	input := "@property --x { syntax: \"<length>\" } <span>"
	got := Sanitize(input)
	if !strings.Contains(got, "<length>") {
		t.Fatalf("<length> not preserved: %q", got)
	}
	if strings.Contains(got, "<span>") {
		t.Fatalf("<span> after closing brace preserved: %q", got)
	}
}

func TestSanitizeSyntaxWithoutProperty(t *testing.T) {
	// "syntax:" alone, with no @property before it, protects nothing.
	got := Sanitize(`.x { syntax: "<angle>"; }`)
	if strings.Contains(got, "<angle>") {
		t.Fatalf("preserved without @property context: %q", got)
	}
}

func TestSanitizeMultipleComponentsInOneDescriptor(t *testing.T) {
	input := `@property --size { syntax: "<length> | <percentage>"; }`
	got := Sanitize(input)
	if !strings.Contains(got, "<length>") || !strings.Contains(got, "<percentage>") {
		t.Fatalf("expected both components preserved: %q", got)
	}
}

func TestSanitizeSecondPropertyRule(t *testing.T) {
	input := `@property --a { syntax: "<angle>"; inherits: false; }` + "\n" +
		`<p>junk</p>` + "\n" +
		`@property --b { syntax: "<color>"; inherits: true; }`
	got := Sanitize(input)
	if !strings.Contains(got, "<angle>") || !strings.Contains(got, "<color>") {
		t.Fatalf("descriptor tokens lost: %q", got)
	}
	if strings.Contains(got, "<p>") || strings.Contains(got, "</p>") {
		t.Fatalf("markup between rules survived: %q", got)
	}
}

func TestSanitizeNoPlaceholderResidue(t *testing.T) {
	input := `@property --x { syntax: "<angle>"; } <b>bold</b>`
	got := Sanitize(input)
	if strings.Contains(got, tokenPrefix) {
		t.Fatalf("placeholder leaked into output: %q", got)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	input := `@property --x { syntax: "<angle>"; } <div>text</div> .a{color:blue}`
	once := Sanitize(input)
	twice := Sanitize(once)
	if once != twice {
		t.Fatalf("not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestRemovedTags(t *testing.T) {
	raw := `<div>one</div><span>two</span><div>again</div><unknown-thing>`
	got := RemovedTags(raw)
	if len(got) != 2 || got[0] != "div" || got[1] != "span" {
		t.Fatalf("expected [div span], got %v", got)
	}
}

func TestRemovedTagsSkipsDescriptorTokens(t *testing.T) {
	raw := `@property --weird { syntax: "<a>"; } <p>x</p>`
	got := RemovedTags(raw)
	if len(got) != 1 || got[0] != "p" {
		t.Fatalf("expected [p], got %v", got)
	}
}

func TestIsStandardTag(t *testing.T) {
	if !IsStandardTag("div") || !IsStandardTag("script") {
		t.Fatal("expected standard tags to be recognized")
	}
	if IsStandardTag("angle") || IsStandardTag("my-type") {
		t.Fatal("CSS component names must not be recognized as tags")
	}
}
