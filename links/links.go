// Package links decides where a reference to a post should point: the post's
// own route on this site, or a canonical copy hosted elsewhere.
package links

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PostReference is a post as seen by the rendering layer.
type PostReference struct {
	Title       string
	Slug        string // internal route, e.g. "/blog/supervision-tree"
	Summary     string
	ExternalURL string // canonical URL from front matter, if any
}

// Overrides maps an exact post title to an external URL.
type Overrides map[string]string

// ResolvedLink is the outcome of resolving a PostReference.
type ResolvedLink struct {
	IsExternal bool
	Target     string
}

// DefaultOverrides returns the compiled-in override table.
func DefaultOverrides() Overrides {
	return Overrides{
		"How to build a self-healing system using supervision tree in Elixir": "https://kodius.com/blog/elixir-supervision-tree",
	}
}

// Resolve returns the link for post. The boolean is false when post is nil,
// meaning there is nothing to link to.
//
// Titles are compared byte for byte. An override wins over the post's own
// ExternalURL.
func Resolve(post *PostReference, overrides Overrides) (ResolvedLink, bool) {
	if post == nil {
		return ResolvedLink{}, false
	}
	if url, ok := overrides[post.Title]; ok {
		return ResolvedLink{IsExternal: true, Target: url}, true
	}
	if post.ExternalURL != "" {
		return ResolvedLink{IsExternal: true, Target: post.ExternalURL}, true
	}
	return ResolvedLink{Target: post.Slug}, true
}

// Resolver holds an override table that never changes after construction,
// so one Resolver can be shared by every request.
type Resolver struct {
	overrides Overrides
}

// NewResolver copies overrides into a new Resolver.
func NewResolver(overrides map[string]string) *Resolver {
	m := make(Overrides, len(overrides))
	for title, url := range overrides {
		m[title] = url
	}
	return &Resolver{overrides: m}
}

// Resolve is Resolve with the resolver's override table.
func (r *Resolver) Resolve(post *PostReference) (ResolvedLink, bool) {
	if r == nil {
		return Resolve(post, nil)
	}
	return Resolve(post, r.overrides)
}

// Lookup returns the override URL registered for title.
func (r *Resolver) Lookup(title string) (string, bool) {
	if r == nil {
		return "", false
	}
	url, ok := r.overrides[title]
	return url, ok
}

// Len reports the number of overrides.
func (r *Resolver) Len() int {
	if r == nil {
		return 0
	}
	return len(r.overrides)
}

// LoadOverrides reads a YAML mapping of title to URL from path. Keys are kept
// exactly as written.
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overrides %s: %w", path, err)
	}
	var m Overrides
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse overrides %s: %w", path, err)
	}
	if m == nil {
		m = Overrides{}
	}
	return m, nil
}
