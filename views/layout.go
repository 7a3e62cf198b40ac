package views

import (
	"context"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// Layout wraps body in the full HTML document.
func Layout(site SiteMeta, meta PageMeta, jsonLD string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(meta.Title)
		h.raw("</title>")
		writeMeta(h, "name", "description", meta.Description)
		if len(site.Keywords) > 0 {
			writeMeta(h, "name", "keywords", strings.Join(site.Keywords, ", "))
		}
		if site.Author != "" {
			writeMeta(h, "name", "author", site.Author)
		}
		writeMeta(h, "property", "og:title", meta.Title)
		writeMeta(h, "property", "og:description", meta.Description)
		writeMeta(h, "property", "og:type", meta.OGType)
		writeMeta(h, "property", "og:url", meta.URL)
		writeMeta(h, "property", "og:site_name", site.Title)
		if meta.URL != "" {
			h.raw(`<link rel="canonical"`)
			h.url("href", meta.URL)
			h.raw(">")
		}
		h.raw(`<link rel="icon" href="/favicon.svg">`)
		h.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml"`)
		h.attr("title", site.Title)
		h.raw(">")
		h.raw(`<link rel="stylesheet" href="/public/felog.css">`)
		h.raw(`<script src="/public/htmx.min.js" defer></script>`)
		if jsonLD != "" {
			// json.Marshal escapes <, > and &, so the payload cannot close the tag.
			h.raw(`<script type="application/ld+json">`)
			h.raw(jsonLD)
			h.raw("</script>")
		}
		h.raw(`</head><body><header class="site-header"><a class="site-title" href="/">`)
		h.text(site.Title)
		h.raw(`</a></header><main id="main">`)
		h.render(ctx, body)
		h.raw(`</main>`)
		writeFooter(h, site)
		h.raw(`</body></html>`)
	})
}

func writeMeta(h *htmlWriter, key, name, content string) {
	if content == "" {
		return
	}
	h.raw("<meta")
	h.attr(key, name)
	h.attr("content", content)
	h.raw(">")
}

func writeFooter(h *htmlWriter, site SiteMeta) {
	h.raw(`<footer class="site-footer">`)
	if social := socialLinks(site.Social); len(social) > 0 {
		h.raw(`<ul class="social">`)
		for _, s := range social {
			h.raw("<li><a")
			h.url("href", s.URL)
			h.raw(` target="_blank" rel="noopener noreferrer">`)
			h.text(s.Name)
			h.raw("</a></li>")
		}
		h.raw("</ul>")
	}
	h.raw("<p>© ")
	h.num(time.Now().Year())
	if site.Author != "" {
		h.raw(" ")
		h.text(site.Author)
	}
	h.raw("</p></footer>")
}

// NotFound renders the 404 page.
func NotFound(site SiteMeta) templ.Component {
	meta := PageMeta{Title: "Not found | " + site.Title, OGType: "website"}
	return Layout(site, meta, "", component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="error"><h1>404</h1><p>This page does not exist.</p><a href="/">Back to all posts</a></section>`)
	}))
}

// ServerError renders the 500 page.
func ServerError(site SiteMeta) templ.Component {
	meta := PageMeta{Title: "Error | " + site.Title, OGType: "website"}
	return Layout(site, meta, "", component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="error"><h1>500</h1><p>Something went wrong. Try again later.</p></section>`)
	}))
}
