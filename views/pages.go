package views

import (
	"context"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/elvismelkic/felog/links"
	"github.com/elvismelkic/felog/markdown"
)

// DefaultPostCount is used when SiteMeta.CountOfInitialPost is unset.
const DefaultPostCount = 10

// Home renders the full home page.
func Home(site SiteMeta, r *links.Resolver, posts []BlogPost, activeTag string, tags []string, limit int) templ.Component {
	meta := PageMeta{
		Title:       site.Title,
		Description: site.Description,
		URL:         buildURL(site.SiteURL),
		OGType:      "website",
	}
	return Layout(site, meta, WebsiteJsonLD(site), HomePartial(site, r, posts, activeTag, tags, limit))
}

// HomePartial renders the home page body without the document shell.
func HomePartial(site SiteMeta, r *links.Resolver, posts []BlogPost, activeTag string, tags []string, limit int) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="bio">`)
		if site.AuthorName != "" {
			h.raw("<h2>")
			h.text(site.AuthorName)
			h.raw("</h2>")
		}
		if site.Introduction != "" {
			h.raw("<p>")
			h.text(site.Introduction)
			h.raw("</p>")
		}
		h.raw(`</section><nav class="tags">`)
		writeTagLink(h, "All", "", activeTag == "")
		for _, t := range tags {
			writeTagLink(h, DisplayTag(t), t, t == activeTag)
		}
		h.raw("</nav>")
		h.render(ctx, BlogSection(r, posts, activeTag, limit))
	})
}

func writeTagLink(h *htmlWriter, label, tag string, active bool) {
	href := "/"
	if tag != "" {
		href = "/?tag=" + url.QueryEscape(tag)
	}
	h.raw("<a")
	h.attr("class", tagClass(active))
	h.url("href", href)
	h.url("hx-get", withQuery(href, "partial=blog"))
	h.attr("hx-target", "#posts")
	h.attr("hx-swap", "outerHTML")
	h.url("hx-push-url", href)
	h.raw(">")
	h.text(label)
	h.raw("</a>")
}

// BlogSection renders the thumbnail list, showing at most limit posts
// followed by a link that raises the limit. limit <= 0 shows every post.
func BlogSection(r *links.Resolver, posts []BlogPost, activeTag string, limit int) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		shown := posts
		if limit > 0 && len(posts) > limit {
			shown = posts[:limit]
		}
		h.raw(`<section id="posts">`)
		if len(shown) == 0 {
			h.raw(`<p class="empty">No posts yet.</p>`)
		}
		h.raw(`<ul class="thumbnails">`)
		for _, p := range shown {
			h.raw("<li>")
			h.render(ctx, ThumbnailItem(r, p.Reference()))
			h.raw("</li>")
		}
		h.raw("</ul>")
		if len(shown) < len(posts) {
			q := url.Values{}
			if activeTag != "" {
				q.Set("tag", activeTag)
			}
			q.Set("count", strconv.Itoa(limit+DefaultPostCount))
			href := "/?" + q.Encode()
			h.raw(`<a class="more"`)
			h.url("href", href)
			h.url("hx-get", withQuery(href, "partial=blog"))
			h.attr("hx-target", "#posts")
			h.attr("hx-swap", "outerHTML")
			h.raw(">More posts</a>")
		}
		h.raw("</section>")
	})
}

// Post renders the full page for a single post.
func Post(site SiteMeta, r *links.Resolver, post BlogPost, previous, next *BlogPost) templ.Component {
	title := headingText(post.Reference())
	meta := PageMeta{
		Title:       title + " | " + site.Title,
		Description: post.Summary,
		URL:         buildURL(site.SiteURL, "blog", post.Slug),
		OGType:      "article",
	}
	canonical := ""
	if link, ok := r.Resolve(&links.PostReference{Title: post.Title, ExternalURL: post.ExternalURL}); ok && link.IsExternal {
		canonical = link.Target
	}
	return Layout(site, meta, BlogPostingJsonLD(site, post, canonical), PostPartial(r, post, previous, next))
}

// PostPartial renders a post's article and navigator without the document shell.
func PostPartial(r *links.Resolver, post BlogPost, previous, next *BlogPost) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<article class="post"><header><h1>`)
		h.text(headingText(post.Reference()))
		h.raw("</h1>")
		if post.Date != "" {
			h.raw("<time")
			h.attr("datetime", post.Date)
			h.raw(">")
			h.text(post.Date)
			h.raw("</time>")
		}
		if len(post.Tags) > 0 {
			h.raw(`<ul class="post-tags">`)
			for _, t := range post.Tags {
				h.raw("<li><a")
				h.url("href", "/?tag="+url.QueryEscape(t))
				h.raw(">")
				h.text(DisplayTag(t))
				h.raw("</a></li>")
			}
			h.raw("</ul>")
		}
		h.raw(`</header><div class="post-body">`)
		h.render(ctx, markdown.Markdown(post.Content))
		h.raw("</div></article>")
		h.render(ctx, PostNavigator(r, RefOrNil(previous), RefOrNil(next)))
	})
}
