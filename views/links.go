package views

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"github.com/elvismelkic/felog/links"
)

const (
	thumbnailClass = "thumbnail"
	// targetClass marks elements revealed by the scroll observer script.
	targetClass = "observed"
	mainTarget  = "#main"
)

// PostNavigator renders the previous/next links shown under a post. A nil
// side renders an empty list item.
func PostNavigator(r *links.Resolver, previous, next *links.PostReference) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<ul class="navigator"><li>`)
		if link, ok := r.Resolve(previous); ok {
			openLink(h, link, "", "prev")
			h.text("← " + previous.Title)
			h.raw("</a>")
		}
		h.raw("</li><li>")
		if link, ok := r.Resolve(next); ok {
			openLink(h, link, "", "next")
			h.text(next.Title + " →")
			h.raw("</a>")
		}
		h.raw("</li></ul>")
	})
}

// ThumbnailItem renders one entry of the post listing. The heading falls
// back to the slug when the post has no title.
func ThumbnailItem(r *links.Resolver, post links.PostReference) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		link, _ := r.Resolve(&post)
		openLink(h, link, thumbnailClass+" "+targetClass, "")
		h.raw("<div><h3>")
		h.text(headingText(post))
		h.raw("</h3><p>")
		h.text(post.Summary)
		h.raw("</p></div></a>")
	})
}

func headingText(post links.PostReference) string {
	if post.Title != "" {
		return post.Title
	}
	return post.Slug
}

// openLink writes the opening <a> for a resolved link. External targets get
// a plain hyperlink; internal ones navigate in-app through htmx.
func openLink(h *htmlWriter, link links.ResolvedLink, class, rel string) {
	h.raw("<a")
	if class != "" {
		h.attr("class", class)
	}
	h.url("href", link.Target)
	if !link.IsExternal {
		h.url("hx-get", withQuery(link.Target, "partial=post"))
		h.attr("hx-target", mainTarget)
		h.attr("hx-swap", "innerHTML show:window:top")
		h.url("hx-push-url", link.Target)
	}
	if rel != "" {
		h.attr("rel", rel)
	}
	h.raw(">")
}

func withQuery(target, query string) string {
	if strings.Contains(target, "?") {
		return target + "&" + query
	}
	return target + "?" + query
}
