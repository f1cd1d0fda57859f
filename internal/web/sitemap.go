package web

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/syn-studios/presscanvas-blog/internal/blog"
	"github.com/syn-studios/presscanvas-blog/internal/listing"
)

type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type URLSet struct {
	XMLName xml.Name `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 urlset"`
	URLs    []URL    `xml:"url"`
}

func (s *Server) Sitemap(c echo.Context) error {
	baseURL := s.Config.Server.BaseURL
	posts, err := s.posts(c.Request().Context())
	if err != nil {
		return err
	}

	urls := []URL{{
		Loc:        baseURL + "/",
		ChangeFreq: "daily",
		Priority:   "1.0",
	}}

	for n := 2; n <= listing.PageCount(len(posts), s.Config.Listing.PageSize); n++ {
		urls = append(urls, URL{Loc: baseURL + feedURL(listing.Query{}, n), Priority: "0.5"})
	}

	for _, post := range posts {
		urls = append(urls, URL{
			Loc:        baseURL + "/posts/" + post.Slug,
			LastMod:    post.Date.Format(blog.DateLayout),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	out, err := xml.MarshalIndent(URLSet{URLs: urls}, "", "  ")
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationXMLCharsetUTF8, append([]byte(xml.Header), out...))
}
