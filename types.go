package felog

import "github.com/elvismelkic/felog/views"

// BlogPost is the core content type stored in SQLite and rendered by templates.
type BlogPost = views.BlogPost

// Image is the metadata of an uploaded image.
type Image = views.Image

func postLink(slug string) string {
	return "/blog/" + slug + "/"
}
