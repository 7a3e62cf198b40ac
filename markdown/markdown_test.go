package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func render(t *testing.T, input string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, input); err != nil {
		t.Fatalf("RenderMarkdown(%q) failed: %v", input, err)
	}
	return buf.String()
}

func TestRenderMarkdownInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"_italic_", "<em>italic</em>"},
		{"text `code` more", "<code>code</code>"},
		{"~~gone~~", "<del>gone</del>"},
	}
	for _, tt := range tests {
		got := render(t, tt.input)
		if !strings.Contains(got, tt.expected) {
			t.Errorf("RenderMarkdown(%q) = %q, want it to contain %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderMarkdownCodeBlockWithLanguage(t *testing.T) {
	got := render(t, "```elixir\nSupervisor.start_link(children, strategy: :one_for_one)\n```")
	if !strings.Contains(got, `class="language-elixir"`) {
		t.Errorf("missing language class: %q", got)
	}
	if !strings.Contains(got, "strategy: :one_for_one") {
		t.Errorf("missing code content: %q", got)
	}
}

func TestRenderMarkdownHeadings(t *testing.T) {
	got := render(t, "# One\n\n## Two\n\n### Three")
	for _, want := range []string{`<h1 id="one">One</h1>`, `<h2 id="two">Two</h2>`, `<h3 id="three">Three</h3>`} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderMarkdown headings missing %q in %q", want, got)
		}
	}
}

func TestRenderMarkdownDropsRawHTML(t *testing.T) {
	got := render(t, "<script>alert(1)</script>\n\nhello")
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML should be dropped: %q", got)
	}
}

func TestRenderMarkdownExternalLinkNewTab(t *testing.T) {
	got := render(t, "[kodius](https://kodius.com/blog/elixir-supervision-tree) and [home](/)")
	if !strings.Contains(got, `<a href="https://kodius.com/blog/elixir-supervision-tree" target="_blank" rel="noopener noreferrer">`) {
		t.Errorf("absolute link should open in new tab: %q", got)
	}
	if !strings.Contains(got, `<a href="/">home</a>`) {
		t.Errorf("relative link should be untouched: %q", got)
	}
}

func TestRenderMarkdownImageLoading(t *testing.T) {
	got := render(t, "![a](/public/uploads/a.jpg)\n\n![b](/public/uploads/b.jpg)")
	first := strings.Index(got, `loading="eager"`)
	second := strings.Index(got, `loading="lazy"`)
	if first < 0 || second < 0 || first > second {
		t.Errorf("expected eager then lazy loading: %q", got)
	}
}

func TestRenderMarkdownUnsafeLink(t *testing.T) {
	got := render(t, "[x](javascript:alert(1))")
	if strings.Contains(got, "javascript:") {
		t.Errorf("javascript URL should be filtered: %q", got)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("hello **world**").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "<p>hello <strong>world</strong></p>") {
		t.Errorf("Markdown component = %q", buf.String())
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"first paragraph", "# Title\n\nFirst *para* here.\n\nSecond.", 0, "First para here."},
		{"soft breaks", "line one\nline two", 0, "line one line two"},
		{"truncated", "abcdefghij", 5, "abcde…"},
		{"short enough", "abc", 5, "abc"},
		{"no paragraph", "# Only a heading", 0, ""},
		{"empty", "", 10, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summary(tt.input, tt.max); got != tt.want {
				t.Errorf("Summary(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}
