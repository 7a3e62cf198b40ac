package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// tagClass returns CSS classes for a tag pill, with active variant.
func tagClass(active bool) string {
	if active {
		return "tag tag-active"
	}
	return "tag"
}

// DisplayTag formats a stored (lowercase) tag for display.
func DisplayTag(tag string) string {
	// Casers keep state, so each call gets its own.
	return cases.Title(language.English).String(tag)
}

// JoinTags formats a tag slice as a comma-separated string for form fields.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block.
func WebsiteJsonLD(site SiteMeta) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     site.Title,
		"url":      buildURL(site.SiteURL),
	}
	if site.Description != "" {
		data["description"] = site.Description
	}
	if site.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  site.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
// Posts whose canonical copy lives elsewhere point mainEntityOfPage there.
func BlogPostingJsonLD(site SiteMeta, post BlogPost, canonical string) string {
	postURL := buildURL(site.SiteURL, "blog", post.Slug)
	if canonical == "" {
		canonical = postURL
	}
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Summary,
		"datePublished": post.Date,
		"url":           postURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  site.Title,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   canonical,
		},
	}
	if site.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  site.Author,
		}
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

type socialLink struct {
	Name string
	URL  string
}

func socialLinks(s Social) []socialLink {
	var out []socialLink
	add := func(name, base, account string) {
		if account != "" {
			out = append(out, socialLink{Name: name, URL: base + account})
		}
	}
	add("GitHub", "https://github.com/", s.GitHub)
	add("Twitter", "https://twitter.com/", s.Twitter)
	add("Medium", "https://medium.com/@", s.Medium)
	add("Facebook", "https://www.facebook.com/", s.Facebook)
	add("LinkedIn", "https://www.linkedin.com/in/", s.LinkedIn)
	return out
}
