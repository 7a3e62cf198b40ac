package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/elvismelkic/felog/links"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buf.String()
}

func testResolver() *links.Resolver {
	return links.NewResolver(map[string]string{
		"Supervision Tree": "https://kodius.com/blog/elixir-supervision-tree",
	})
}

func TestPostNavigatorBothInternal(t *testing.T) {
	prev := &links.PostReference{Title: "Older", Slug: "/blog/older/"}
	next := &links.PostReference{Title: "Newer", Slug: "/blog/newer/"}
	got := renderString(t, PostNavigator(testResolver(), prev, next))

	want := `<ul class="navigator"><li>` +
		`<a href="/blog/older/" hx-get="/blog/older/?partial=post" hx-target="#main" hx-swap="innerHTML show:window:top" hx-push-url="/blog/older/" rel="prev">← Older</a>` +
		`</li><li>` +
		`<a href="/blog/newer/" hx-get="/blog/newer/?partial=post" hx-target="#main" hx-swap="innerHTML show:window:top" hx-push-url="/blog/newer/" rel="next">Newer →</a>` +
		`</li></ul>`
	if got != want {
		t.Errorf("PostNavigator =\n%s\nwant\n%s", got, want)
	}
}

func TestPostNavigatorExternalSide(t *testing.T) {
	prev := &links.PostReference{Title: "Other Post", Slug: "/blog/other-post/"}
	next := &links.PostReference{Title: "Supervision Tree", Slug: "/blog/supervision-tree/"}
	got := renderString(t, PostNavigator(testResolver(), prev, next))

	if !strings.Contains(got, `<a href="https://kodius.com/blog/elixir-supervision-tree" rel="next">Supervision Tree →</a>`) {
		t.Errorf("next side should be a plain external link with → suffix: %s", got)
	}
	if strings.Contains(got, "← Supervision Tree") {
		t.Errorf("glyph must follow the side, not the routing: %s", got)
	}
	if !strings.Contains(got, `rel="prev">← Other Post</a>`) {
		t.Errorf("previous side should be internal with ← prefix: %s", got)
	}
}

func TestPostNavigatorAbsentSides(t *testing.T) {
	prev := &links.PostReference{Title: "Older", Slug: "/blog/older/"}
	got := renderString(t, PostNavigator(testResolver(), prev, nil))
	if !strings.HasSuffix(got, "</li><li></li></ul>") {
		t.Errorf("missing next should render an empty item: %s", got)
	}

	got = renderString(t, PostNavigator(testResolver(), nil, nil))
	if got != `<ul class="navigator"><li></li><li></li></ul>` {
		t.Errorf("no neighbours = %s", got)
	}
}

func TestThumbnailItemInternal(t *testing.T) {
	post := links.PostReference{Title: "Other Post", Slug: "/blog/other-post/", Summary: "A summary"}
	got := renderString(t, ThumbnailItem(testResolver(), post))

	want := `<a class="thumbnail observed" href="/blog/other-post/" hx-get="/blog/other-post/?partial=post" hx-target="#main" hx-swap="innerHTML show:window:top" hx-push-url="/blog/other-post/">` +
		`<div><h3>Other Post</h3><p>A summary</p></div></a>`
	if got != want {
		t.Errorf("ThumbnailItem =\n%s\nwant\n%s", got, want)
	}
}

func TestThumbnailItemExternal(t *testing.T) {
	post := links.PostReference{Title: "Supervision Tree", Slug: "/blog/supervision-tree/", Summary: "Elixir"}
	got := renderString(t, ThumbnailItem(testResolver(), post))

	want := `<a class="thumbnail observed" href="https://kodius.com/blog/elixir-supervision-tree">` +
		`<div><h3>Supervision Tree</h3><p>Elixir</p></div></a>`
	if got != want {
		t.Errorf("ThumbnailItem =\n%s\nwant\n%s", got, want)
	}
}

func TestThumbnailItemSlugFallback(t *testing.T) {
	got := renderString(t, ThumbnailItem(testResolver(), links.PostReference{Slug: "/untitled"}))
	if !strings.Contains(got, "<h3>/untitled</h3>") {
		t.Errorf("empty title should fall back to slug: %s", got)
	}
}

func TestThumbnailItemEscapes(t *testing.T) {
	post := links.PostReference{Title: "<b>x</b>", Slug: "/blog/x/", Summary: "a & b"}
	got := renderString(t, ThumbnailItem(testResolver(), post))
	if strings.Contains(got, "<b>") {
		t.Errorf("title should be escaped: %s", got)
	}
	if !strings.Contains(got, "a &amp; b") {
		t.Errorf("summary should be escaped: %s", got)
	}
}

func TestThumbnailItemUnsafeTarget(t *testing.T) {
	r := links.NewResolver(map[string]string{"Bad": "javascript:alert(1)"})
	got := renderString(t, ThumbnailItem(r, links.PostReference{Title: "Bad", Slug: "/blog/bad/"}))
	if strings.Contains(got, "javascript:") {
		t.Errorf("unsafe override URL should be sanitized: %s", got)
	}
}
