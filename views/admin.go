package views

import (
	"context"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
)

func adminMeta(site SiteMeta) PageMeta {
	return PageMeta{Title: "Admin | " + site.Title, OGType: "website"}
}

func csrfField(h *htmlWriter, token string) {
	h.raw(`<input type="hidden" name="_csrf"`)
	h.attr("value", token)
	h.raw(">")
}

// AdminLogin renders the password form.
func AdminLogin(site SiteMeta, showError bool, csrfToken string) templ.Component {
	return Layout(site, adminMeta(site), "", component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="admin-login"><h1>Admin</h1>`)
		if showError {
			h.raw(`<p class="error">Wrong password.</p>`)
		}
		h.raw(`<form method="post" action="/admin/login/">`)
		csrfField(h, csrfToken)
		h.raw(`<label>Password <input type="password" name="password" autofocus required></label>`)
		h.raw(`<button type="submit">Log in</button></form></section>`)
	}))
}

// AdminDashboard renders the post list with an empty editor.
func AdminDashboard(site SiteMeta, posts []BlogPost, message string, csrfToken string) templ.Component {
	return Layout(site, adminMeta(site), "", component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="admin" id="admin">`)
		h.raw(`<nav class="admin-nav"><a href="/admin/images/">Images</a>`)
		h.raw(`<form method="post" action="/admin/logout/">`)
		csrfField(h, csrfToken)
		h.raw(`<button type="submit">Log out</button></form></nav>`)
		if message != "" {
			h.raw(`<p class="message">`)
			h.text(message)
			h.raw("</p>")
		}
		h.raw(`<table class="admin-posts"><thead><tr><th>Title</th><th>Date</th><th>Status</th><th></th></tr></thead><tbody>`)
		for _, p := range posts {
			editURL := "/admin/post/" + url.PathEscape(p.Slug) + "/"
			h.raw("<tr><td>")
			h.text(headingText(p.Reference()))
			if p.ExternalURL != "" {
				h.raw(` <span class="badge">external</span>`)
			}
			h.raw("</td><td>")
			h.text(p.Date)
			h.raw("</td><td>")
			if p.Published {
				h.raw("published")
			} else {
				h.raw("draft")
			}
			h.raw(`</td><td><button`)
			h.url("hx-get", editURL)
			h.raw(` hx-target="#editor">Edit</button><button`)
			h.url("hx-delete", editURL)
			h.attr("hx-headers", `{"X-CSRF-Token": "`+csrfToken+`"}`)
			h.raw(` hx-target="body" hx-confirm="Delete this post?">Delete</button></td></tr>`)
		}
		h.raw(`</tbody></table><div id="editor">`)
		h.render(ctx, AdminFormPartial(BlogPost{Published: true}, csrfToken))
		h.raw("</div></section>")
	}))
}

// AdminFormPartial renders the post editor.
func AdminFormPartial(post BlogPost, csrfToken string) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<form class="admin-form" method="post" action="/admin/save/">`)
		csrfField(h, csrfToken)
		textInput(h, "Title", "title", post.Title)
		textInput(h, "Slug", "slug", post.Slug)
		textInput(h, "Date", "date", post.Date)
		textInput(h, "Tags", "tags", JoinTags(post.Tags))
		textInput(h, "Summary", "summary", post.Summary)
		textInput(h, "External URL", "external_url", post.ExternalURL)
		h.raw(`<label>Content <textarea name="content" rows="20">`)
		h.text(post.Content)
		h.raw(`</textarea></label><label><input type="checkbox" name="published" value="1"`)
		if post.Published {
			h.raw(" checked")
		}
		h.raw(`> Published</label><button type="submit">Save</button></form>`)
	})
}

func textInput(h *htmlWriter, label, name, value string) {
	h.raw("<label>")
	h.text(label)
	h.raw(` <input type="text"`)
	h.attr("name", name)
	h.attr("value", value)
	h.raw("></label>")
}

// AdminImages renders the upload form and the list of uploaded images.
func AdminImages(site SiteMeta, images []Image, csrfToken string) templ.Component {
	return Layout(site, adminMeta(site), "", component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="admin-images" id="images"><nav class="admin-nav"><a href="/admin/">Posts</a></nav>`)
		h.raw(`<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
		csrfField(h, csrfToken)
		h.raw(`<input type="file" name="image" accept="image/*" required><button type="submit">Upload</button></form><ul>`)
		for _, img := range images {
			src := "/public/uploads/" + img.Filename
			h.raw("<li><img")
			h.url("src", src)
			h.attr("alt", img.OriginalName)
			h.raw(` loading="lazy" width="160"><code>`)
			h.text("![" + img.OriginalName + "](" + src + ")")
			h.raw("</code><span>")
			h.num(img.Width)
			h.raw("×")
			h.num(img.Height)
			h.raw(", ")
			h.text(strconv.Itoa(img.Size/1024) + " KB")
			h.raw("</span><button")
			h.url("hx-delete", "/admin/images/"+url.PathEscape(img.Filename)+"/")
			h.attr("hx-headers", `{"X-CSRF-Token": "`+csrfToken+`"}`)
			h.raw(` hx-target="body">Delete</button></li>`)
		}
		h.raw("</ul></section>")
	}))
}
