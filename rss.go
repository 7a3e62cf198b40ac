package felog

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

// absoluteLink resolves post and turns an internal route into an absolute
// URL on this site.
func (a *App) absoluteLink(post BlogPost) (target string, external bool) {
	ref := post.Reference()
	link, _ := a.Resolver.Resolve(&ref)
	if link.IsExternal {
		return link.Target, true
	}
	return BuildURL(a.Config.Site.SiteURL, "blog", post.Slug), false
}

func (a *App) renderRSS(c echo.Context, posts []BlogPost) error {
	site := a.Config.Site
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		pubDate := ""
		if t, err := time.Parse("2006-01-02", p.Date); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		link, _ := a.absoluteLink(p)
		title := p.Title
		if title == "" {
			title = p.Slug
		}
		items = append(items, rssItem{
			Title:       title,
			Link:        link,
			Description: p.Summary,
			PubDate:     pubDate,
			GUID:        link,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       site.Title,
			Link:        BuildURL(site.SiteURL),
			Description: site.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(feed)
}
