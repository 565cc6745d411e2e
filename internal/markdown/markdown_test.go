package markdown

import (
	"strings"
	"testing"
)

func TestToHTMLBasic(t *testing.T) {
	out, err := ToHTML("# Olá\n\nTexto com **destaque**.")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "Olá") {
		t.Errorf("missing heading in %q", out)
	}
	if !strings.Contains(out, "<strong>destaque</strong>") {
		t.Errorf("missing bold text in %q", out)
	}
}

func TestToHTMLGFMTable(t *testing.T) {
	out, err := ToHTML("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Errorf("GFM table not rendered: %q", out)
	}
}

func TestToHTMLRawHTMLPassThrough(t *testing.T) {
	out, err := ToHTML("<div class=\"widget\">conteúdo</div>")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(out, "<div class=\"widget\">") {
		t.Errorf("raw HTML should pass through, got %q", out)
	}
}

func TestToHTMLCodeHighlighting(t *testing.T) {
	out, err := ToHTML("```go\nfmt.Println(\"oi\")\n```")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(out, "<pre") {
		t.Errorf("fenced code block not rendered: %q", out)
	}
}
