// Package felog is the engine behind a personal blog: posts in SQLite,
// server-rendered templ views, an admin dashboard, RSS and a sitemap.
//
// Every reference to a post goes through a links.Resolver, which decides
// whether the reference stays on this site or points at a canonical copy
// hosted elsewhere.
package felog

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/elvismelkic/felog/links"
	"github.com/elvismelkic/felog/views"
)

// ViewFuncs holds the components the handlers render. DefaultViews fills it
// from the views package; WithViews swaps in custom ones.
type ViewFuncs struct {
	Home             func(posts []BlogPost, activeTag string, tags []string, limit int) templ.Component
	HomePartial      func(posts []BlogPost, activeTag string, tags []string, limit int) templ.Component
	BlogSection      func(posts []BlogPost, activeTag string, limit int) templ.Component
	Post             func(post BlogPost, previous, next *BlogPost) templ.Component
	PostPartial      func(post BlogPost, previous, next *BlogPost) templ.Component
	AdminLogin       func(showError bool, csrfToken string) templ.Component
	AdminDashboard   func(posts []BlogPost, message string, csrfToken string) templ.Component
	AdminFormPartial func(post BlogPost, csrfToken string) templ.Component
	AdminImages      func(images []Image, csrfToken string) templ.Component
	NotFound         func() templ.Component
	ServerError      func() templ.Component
}

// DefaultViews binds the views package to site metadata and a resolver.
func DefaultViews(site views.SiteMeta, r *links.Resolver) ViewFuncs {
	return ViewFuncs{
		Home: func(posts []BlogPost, activeTag string, tags []string, limit int) templ.Component {
			return views.Home(site, r, posts, activeTag, tags, limit)
		},
		HomePartial: func(posts []BlogPost, activeTag string, tags []string, limit int) templ.Component {
			return views.HomePartial(site, r, posts, activeTag, tags, limit)
		},
		BlogSection: func(posts []BlogPost, activeTag string, limit int) templ.Component {
			return views.BlogSection(r, posts, activeTag, limit)
		},
		Post: func(post BlogPost, previous, next *BlogPost) templ.Component {
			return views.Post(site, r, post, previous, next)
		},
		PostPartial: func(post BlogPost, previous, next *BlogPost) templ.Component {
			return views.PostPartial(r, post, previous, next)
		},
		AdminLogin: func(showError bool, csrfToken string) templ.Component {
			return views.AdminLogin(site, showError, csrfToken)
		},
		AdminDashboard: func(posts []BlogPost, message string, csrfToken string) templ.Component {
			return views.AdminDashboard(site, posts, message, csrfToken)
		},
		AdminFormPartial: views.AdminFormPartial,
		AdminImages: func(images []Image, csrfToken string) templ.Component {
			return views.AdminImages(site, images, csrfToken)
		},
		NotFound:    func() templ.Component { return views.NotFound(site) },
		ServerError: func() templ.Component { return views.ServerError(site) },
	}
}

// App is the central felog application. It wires together the store,
// cache, resolver, handlers, middleware, and views.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Cache    *PostCache
	Resolver *links.Resolver
	Views    ViewFuncs

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new App. Unless overridden by options, it uses the
// compiled-in redirect table and the default views.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Resolver:  links.NewResolver(links.DefaultOverrides()),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.Views.Home == nil {
		a.Views = DefaultViews(a.Config.Site, a.Resolver)
	}
	return a
}

// Init opens the database and registers middleware and routes. Start calls
// it; tests call it directly and drive a.Echo as an http.Handler.
func (a *App) Init() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("felog: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("felog: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("felog: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Echo.Logger.Infof("serving %s with %d redirect override(s)", a.Config.Site.Title, a.Resolver.Len())
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/felog.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	// User's static assets
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/post/:slug/", a.handleAdminPost)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/post/:slug/", a.handleAdminDelete)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
