package views

import "github.com/elvismelkic/felog/links"

// SiteMeta is the blog's public metadata. It is built once at startup and
// handed to every page.
type SiteMeta struct {
	Title              string   `mapstructure:"title"`
	Description        string   `mapstructure:"description"`
	AuthorName         string   `mapstructure:"author_name"` // short name used in the bio
	Author             string   `mapstructure:"author"`      // full name for JSON-LD
	Introduction       string   `mapstructure:"introduction"`
	SiteURL            string   `mapstructure:"site_url"`
	Icon               string   `mapstructure:"icon"`
	Keywords           []string `mapstructure:"keywords"`
	Social             Social   `mapstructure:"social"`
	CountOfInitialPost int      `mapstructure:"count_of_initial_post"`
}

// Social holds account names; empty entries are not rendered.
type Social struct {
	Twitter  string `mapstructure:"twitter"`
	GitHub   string `mapstructure:"github"`
	Medium   string `mapstructure:"medium"`
	Facebook string `mapstructure:"facebook"`
	LinkedIn string `mapstructure:"linkedin"`
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// BlogPost is the core content type stored in SQLite and rendered by templates.
type BlogPost struct {
	Title       string
	Date        string
	Tags        []string
	Summary     string
	Link        string
	Slug        string
	Content     string
	Published   bool
	ExternalURL string
}

// Reference projects the post into the form the link resolver works on.
func (p BlogPost) Reference() links.PostReference {
	return links.PostReference{
		Title:       p.Title,
		Slug:        p.Link,
		Summary:     p.Summary,
		ExternalURL: p.ExternalURL,
	}
}

// RefOrNil is Reference for an optional post.
func RefOrNil(p *BlogPost) *links.PostReference {
	if p == nil {
		return nil
	}
	ref := p.Reference()
	return &ref
}

// Image is an uploaded image's metadata.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}
