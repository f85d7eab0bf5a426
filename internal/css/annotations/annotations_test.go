package annotations

import "testing"

func TestExtractBasicCase(t *testing.T) {
	css := "/* @class-manager flex-row | Flex row with gap. */\n.flex-row { display:flex; }"
	got := Extract(css)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].Name != "flex-row" || got[0].Description != "Flex row with gap." {
		t.Fatalf("unexpected record: %+v", got[0])
	}
}

func TestExtractEmptyInput(t *testing.T) {
	if got := Extract(""); len(got) != 0 {
		t.Fatalf("expected no records, got %v", got)
	}
}

func TestExtractNoDescription(t *testing.T) {
	got := Extract("/* @class-manager ok-name */")
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].Name != "ok-name" || got[0].Description != "" {
		t.Fatalf("unexpected record: %+v", got[0])
	}
}

func TestExtractEmptyDescriptionAfterPipe(t *testing.T) {
	got := Extract("/* @class-manager ok-name |   */")
	if len(got) != 1 || got[0].Name != "ok-name" || got[0].Description != "" {
		t.Fatalf("unexpected records: %v", got)
	}
}

func TestExtractRejectsInvalidNames(t *testing.T) {
	cases := []string{
		"/* @class-manager 1bad-name | desc */",
		"/* @class-manager -leading-dash | desc */",
		"/* @class-manager has space | desc */",
		"/* @class-manager bäd | desc */",
		"/* @class-manager | desc */",
		"/* @class-manager */",
		"/* @class-manager */ /* @class-managerx name */",
	}
	for _, css := range cases {
		if got := Extract(css); len(got) != 0 {
			t.Fatalf("expected no records for %q, got %v", css, got)
		}
	}
}

func TestExtractMultipleBlocksInOrder(t *testing.T) {
	css := "/* @class-manager first | one */\n.a{}\n/* @class-manager second | two */\n.b{}"
	got := Extract(css)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Name != "first" || got[1].Name != "second" {
		t.Fatalf("records out of order: %v", got)
	}
}

func TestExtractMultipleLinesInOneBlock(t *testing.T) {
	css := "/*\n * @class-manager alpha | First.\n * notes in between\n * @class-manager beta\n */"
	got := Extract(css)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Name != "alpha" || got[0].Description != "First." {
		t.Fatalf("unexpected first record: %+v", got[0])
	}
	if got[1].Name != "beta" || got[1].Description != "" {
		t.Fatalf("unexpected second record: %+v", got[1])
	}
}

func TestExtractKeepsDuplicates(t *testing.T) {
	css := "/* @class-manager dup | a */ /* @class-manager dup | b */"
	got := Extract(css)
	if len(got) != 2 {
		t.Fatalf("expected duplicates preserved, got %v", got)
	}
	if got[0].Description != "a" || got[1].Description != "b" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestExtractEmbeddedStarsDoNotTerminate(t *testing.T) {
	css := "/* rating: ***** \n @class-manager stars | Star * rating. */"
	got := Extract(css)
	if len(got) != 1 || got[0].Name != "stars" {
		t.Fatalf("embedded stars broke the scan: %v", got)
	}
	if got[0].Description != "Star * rating." {
		t.Fatalf("unexpected description: %q", got[0].Description)
	}
}

func TestExtractUnterminatedComment(t *testing.T) {
	css := ".a{} /* @class-manager lost | never closed"
	if got := Extract(css); len(got) != 0 {
		t.Fatalf("unterminated comment produced records: %v", got)
	}
}

func TestExtractTagMustStartLine(t *testing.T) {
	css := "/* see @class-manager mid-line | nope */"
	if got := Extract(css); len(got) != 0 {
		t.Fatalf("mid-line tag matched: %v", got)
	}
}

func TestExtractDescriptionWithPipes(t *testing.T) {
	// Only the first pipe splits; later ones belong to the description.
	got := Extract("/* @class-manager split | a | b | c */")
	if len(got) != 1 || got[0].Description != "a | b | c" {
		t.Fatalf("unexpected records: %v", got)
	}
}
