package felog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/elvismelkic/felog/links"
	"github.com/elvismelkic/felog/views"
)

// SiteConfig holds all configuration for a felog site. It is loaded once
// and passed by value; nothing reads configuration from globals.
type SiteConfig struct {
	Site views.SiteMeta `mapstructure:"site"`

	Addr          string `mapstructure:"addr"`           // Listen address (default ":3000")
	DatabasePath  string `mapstructure:"database_path"`  // SQLite path (default "data/blog.db")
	RedirectsPath string `mapstructure:"redirects_path"` // Optional YAML title->URL table

	AdminPassword string `mapstructure:"admin_password"` // Required: admin login password
	SessionSecret string `mapstructure:"session_secret"` // Required: session encryption secret
	CookieSecure  bool   `mapstructure:"cookie_secure"`  // Set true for HTTPS

	PostCacheTTL time.Duration `mapstructure:"post_cache_ttl"` // Post cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "Blog"
	}
	if c.Site.SiteURL == "" {
		c.Site.SiteURL = "http://localhost:3000"
	}
	c.Site.SiteURL = strings.TrimSuffix(c.Site.SiteURL, "/")
	if c.Site.CountOfInitialPost <= 0 {
		c.Site.CountOfInitialPost = views.DefaultPostCount
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// LoadConfig reads configuration from path (or ./felog.yaml when path is
// empty) and FELOG_* environment variables. A missing default config file is
// not an error.
func LoadConfig(path string) (SiteConfig, error) {
	v := viper.New()

	v.SetDefault("site.title", "Blog")
	v.SetDefault("site.site_url", "http://localhost:3000")
	v.SetDefault("site.count_of_initial_post", views.DefaultPostCount)
	v.SetDefault("addr", ":3000")
	v.SetDefault("database_path", "data/blog.db")
	v.SetDefault("redirects_path", "")
	v.SetDefault("admin_password", "")
	v.SetDefault("session_secret", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("post_cache_ttl", "5m")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("felog")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("FELOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return SiteConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// LoadResolver builds the link resolver: the table at RedirectsPath when set,
// the compiled-in table otherwise.
func (c SiteConfig) LoadResolver() (*links.Resolver, error) {
	if c.RedirectsPath == "" {
		return links.NewResolver(links.DefaultOverrides()), nil
	}
	overrides, err := links.LoadOverrides(c.RedirectsPath)
	if err != nil {
		return nil, err
	}
	return links.NewResolver(overrides), nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithResolver replaces the compiled-in link resolver.
func WithResolver(r *links.Resolver) Option {
	return func(a *App) {
		a.Resolver = r
	}
}

// WithViews replaces the default views.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}
