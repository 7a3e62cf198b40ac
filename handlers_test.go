package felog

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elvismelkic/felog/views"
)

const overriddenTitle = "How to build a self-healing system using supervision tree in Elixir"

func setupTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	app := New(SiteConfig{
		Site: views.SiteMeta{
			Title:   "Functional stuff",
			SiteURL: "https://example.com/",
		},
		DatabasePath:  filepath.Join(dir, "blog.db"),
		AdminPassword: "password",
		SessionSecret: "0123456789abcdef0123456789abcdef",
	}, WithStaticDir(dir))
	if err := app.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { app.Close() })

	seedPosts(t, app.Store,
		BlogPost{Slug: "old-post", Title: "Old post", Date: "2019-01-01", Summary: "Oldest.", Content: "Old body.", Published: true},
		BlogPost{Slug: "supervision-tree", Title: overriddenTitle, Date: "2020-03-01", Summary: "Supervisors.", Content: "Local copy.", Published: true},
		BlogPost{Slug: "go-post", Title: "Go post", Date: "2024-03-01", Summary: "About Go.", Content: "Go **body**.", Tags: []string{"go"}, Published: true},
		BlogPost{Slug: "moved", Title: "Moved", Date: "2024-04-01", Summary: "Lives elsewhere.", Content: "x", Published: true, ExternalURL: "https://example.org/moved"},
	)
	return app
}

func serve(app *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	return rec
}

func TestInitRequiresSecrets(t *testing.T) {
	app := New(SiteConfig{DatabasePath: filepath.Join(t.TempDir(), "blog.db")})
	if err := app.Init(); err == nil {
		t.Fatal("expected Init to fail without AdminPassword")
	}
	app = New(SiteConfig{DatabasePath: filepath.Join(t.TempDir(), "blog.db"), AdminPassword: "x"})
	if err := app.Init(); err == nil {
		t.Fatal("expected Init to fail without SessionSecret")
	}
}

func TestHomeListsResolvedLinks(t *testing.T) {
	app := setupTestApp(t)

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d", rec.Code)
	}
	body := rec.Body.String()

	for _, want := range []string{
		`href="https://kodius.com/blog/elixir-supervision-tree"`,
		`href="https://example.org/moved"`,
		`href="/blog/go-post/" hx-get="/blog/go-post/?partial=post"`,
		`<h3>Go post</h3>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
	if strings.Contains(body, `hx-get="/blog/supervision-tree/`) {
		t.Error("overridden post should not navigate in-app")
	}
}

func TestHomeTagPartial(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/?tag=go&partial=blog", nil)
	req.Header.Set("HX-Request", "true")
	rec := serve(app, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<html") {
		t.Error("partial response should not include the document shell")
	}
	if !strings.Contains(body, "Go post") || strings.Contains(body, "Old post") {
		t.Errorf("tag filter not applied: %s", body)
	}
}

func TestPostRedirectsWhenExternal(t *testing.T) {
	app := setupTestApp(t)

	tests := []struct {
		path string
		want string
	}{
		{"/blog/supervision-tree/", "https://kodius.com/blog/elixir-supervision-tree"},
		{"/blog/moved/", "https://example.org/moved"},
	}
	for _, tt := range tests {
		rec := serve(app, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rec.Code != http.StatusFound {
			t.Errorf("GET %s status = %d, want 302", tt.path, rec.Code)
			continue
		}
		if got := rec.Header().Get("Location"); got != tt.want {
			t.Errorf("GET %s Location = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestPostRendersNavigator(t *testing.T) {
	app := setupTestApp(t)

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/blog/go-post/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`<strong>body</strong>`,
		`<ul class="navigator">`,
		`<a href="https://kodius.com/blog/elixir-supervision-tree" rel="prev">← ` + overriddenTitle + `</a>`,
		`<a href="https://example.org/moved" rel="next">Moved →</a>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("post page missing %q", want)
		}
	}
}

func TestPostPartialInternalNeighbours(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/blog/supervision-tree/?partial=post", nil)
	req.Header.Set("HX-Request", "true")
	// The overridden post itself redirects, so look at its older neighbour.
	rec := serve(app, req)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/blog/old-post/?partial=post", nil)
	req.Header.Set("HX-Request", "true")
	rec = serve(app, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<html") {
		t.Error("partial response should not include the document shell")
	}
	if !strings.Contains(body, `<ul class="navigator"><li></li><li><a href="https://kodius.com/blog/elixir-supervision-tree" rel="next">`) {
		t.Errorf("navigator for oldest post not as expected: %s", body)
	}
}

func TestPostNotFound(t *testing.T) {
	app := setupTestApp(t)

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/blog/missing/", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSitemapSkipsExternalPosts(t *testing.T) {
	app := setupTestApp(t)

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<loc>https://example.com/blog/go-post/</loc>") {
		t.Errorf("sitemap missing local post: %s", body)
	}
	for _, unwanted := range []string{"supervision-tree", "kodius.com", "moved"} {
		if strings.Contains(body, unwanted) {
			t.Errorf("sitemap should not mention %q", unwanted)
		}
	}
}

func TestFeedUsesResolvedLinks(t *testing.T) {
	app := setupTestApp(t)

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/feed.xml", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<link>https://kodius.com/blog/elixir-supervision-tree</link>",
		"<link>https://example.org/moved</link>",
		"<link>https://example.com/blog/go-post/</link>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("feed missing %q", want)
		}
	}
}

func TestRobots(t *testing.T) {
	app := setupTestApp(t)

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sitemap: https://example.com/sitemap.xml") {
		t.Errorf("robots.txt = %q", rec.Body.String())
	}
}

func TestAdminShowsLoginWhenAnonymous(t *testing.T) {
	app := setupTestApp(t)

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/admin/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `name="password"`) {
		t.Error("expected login form")
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
}
