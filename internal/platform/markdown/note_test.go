package markdown_test

import (
	"strings"
	"testing"

	"skidlogg/internal/platform/markdown"
)

func TestParseNoteRoundTrip(t *testing.T) {
	t.Parallel()
	note := markdown.Note{Meta: map[string]any{"season": "24/25", "sessions": 3}, Body: "# Säsong\n"}
	content, err := note.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(content, "---\n") {
		t.Fatalf("missing header: %q", content)
	}
	parsed, err := markdown.ParseNote(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Meta["season"] != "24/25" || parsed.Meta["sessions"] != 3 {
		t.Fatalf("unexpected meta: %#v", parsed.Meta)
	}
	if parsed.Body != "\n# Säsong\n" {
		t.Fatalf("unexpected body: %q", parsed.Body)
	}
}

func TestParseNoteWithoutHeader(t *testing.T) {
	t.Parallel()
	parsed, err := markdown.ParseNote("plain text")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(parsed.Meta) != 0 || parsed.Body != "plain text" {
		t.Fatalf("unexpected note: %#v", parsed)
	}
	if _, err := markdown.ParseNote("---\nseason: x\n"); err == nil {
		t.Fatalf("unterminated header should fail")
	}
}

func TestBlockReplace(t *testing.T) {
	t.Parallel()
	block := markdown.Block{Start: "<!-- a -->", End: "<!-- b -->"}
	first := block.Replace("", "one")
	if first != "<!-- a -->\none\n<!-- b -->\n" {
		t.Fatalf("unexpected first render: %q", first)
	}
	withNotes := "my notes\n" + first
	second := block.Replace(withNotes, "two\n")
	if second != "my notes\n<!-- a -->\ntwo\n<!-- b -->\n" {
		t.Fatalf("unexpected replace: %q", second)
	}
	appended := block.Replace("intro", "x")
	if appended != "intro\n\n<!-- a -->\nx\n<!-- b -->\n" {
		t.Fatalf("unexpected append: %q", appended)
	}
}
