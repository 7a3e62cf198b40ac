package felog

import (
	"errors"
	"testing"
	"time"
)

func seedPosts(t *testing.T, s *Store, posts ...BlogPost) {
	t.Helper()
	for _, p := range posts {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost(%s) failed: %v", p.Slug, err)
		}
	}
}

func TestPostCacheAdjacent(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	seedPosts(t, s,
		BlogPost{Slug: "first", Title: "First", Date: "2024-01-01", Published: true},
		BlogPost{Slug: "second", Title: "Second", Date: "2024-02-01", Published: true},
		BlogPost{Slug: "draft", Title: "Draft", Date: "2024-02-15", Published: false},
		BlogPost{Slug: "third", Title: "Third", Date: "2024-03-01", Published: true},
	)
	c := NewPostCache(s, time.Minute)

	tests := []struct {
		slug         string
		wantPrevious string
		wantNext     string
	}{
		{"first", "", "second"},
		{"second", "first", "third"},
		{"third", "second", ""},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			previous, next, err := c.Adjacent(tt.slug)
			if err != nil {
				t.Fatalf("Adjacent(%q) failed: %v", tt.slug, err)
			}
			if got := slugOf(previous); got != tt.wantPrevious {
				t.Errorf("previous = %q, want %q", got, tt.wantPrevious)
			}
			if got := slugOf(next); got != tt.wantNext {
				t.Errorf("next = %q, want %q", got, tt.wantNext)
			}
		})
	}
}

func slugOf(p *BlogPost) string {
	if p == nil {
		return ""
	}
	return p.Slug
}

func TestPostCacheAdjacentReturnsCopies(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	seedPosts(t, s,
		BlogPost{Slug: "a", Title: "A", Date: "2024-01-01", Published: true},
		BlogPost{Slug: "b", Title: "B", Date: "2024-02-01", Published: true},
	)
	c := NewPostCache(s, time.Minute)

	_, next, err := c.Adjacent("a")
	if err != nil || next == nil {
		t.Fatalf("Adjacent(a) = %v, %v", next, err)
	}
	next.Title = "changed"

	got, err := c.GetPost("b")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Title != "B" {
		t.Errorf("cached post was modified through Adjacent result: %q", got.Title)
	}
}

func TestPostCacheAdjacentUnknown(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	c := NewPostCache(s, time.Minute)
	if _, _, err := c.Adjacent("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Adjacent(missing) err = %v, want ErrNotFound", err)
	}
}

func TestPostCacheInvalidate(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	c := NewPostCache(s, time.Hour)
	posts, err := c.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected empty blog, got %d posts", len(posts))
	}

	seedPosts(t, s, BlogPost{Slug: "late", Title: "Late", Date: "2024-01-01", Published: true})
	if posts, _ = c.ListPosts(""); len(posts) != 0 {
		t.Fatalf("expected stale cache before Invalidate, got %d posts", len(posts))
	}

	c.Invalidate()
	if posts, _ = c.ListPosts(""); len(posts) != 1 {
		t.Fatalf("expected 1 post after Invalidate, got %d", len(posts))
	}
}

func TestPostCacheListPostsByTag(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	seedPosts(t, s,
		BlogPost{Slug: "elixir", Title: "Elixir", Date: "2024-01-01", Tags: []string{"Elixir"}, Published: true},
		BlogPost{Slug: "go", Title: "Go", Date: "2024-02-01", Tags: []string{"go"}, Published: true},
	)
	c := NewPostCache(s, time.Minute)

	posts, err := c.ListPosts("ELIXIR")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "elixir" {
		t.Errorf("ListPosts(ELIXIR) = %v, want [elixir]", posts)
	}

	tags, err := c.ListTags()
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("ListTags = %v, want 2 tags", tags)
	}
}
