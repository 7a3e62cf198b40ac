package felog

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// renderSitemap lists the home page and every post served from this site.
// Posts that resolve externally are left out; their canonical page lives
// elsewhere.
func (a *App) renderSitemap(c echo.Context, posts []BlogPost) error {
	urls := []sitemapURL{
		{Loc: BuildURL(a.Config.Site.SiteURL)},
	}
	for _, p := range posts {
		loc, external := a.absoluteLink(p)
		if external {
			continue
		}
		urls = append(urls, sitemapURL{
			Loc:     loc,
			LastMod: p.Date,
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
