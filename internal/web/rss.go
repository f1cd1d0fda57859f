package web

import (
	"net/http"
	"sort"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/syn-studios/presscanvas-blog/internal/blog"
)

const feedSize = 20

// RSS serves the 20 most recent posts with their rendered bodies.
func (s *Server) RSS(c echo.Context) error {
	ctx := c.Request().Context()
	siteURL := s.Config.Server.BaseURL
	site := s.Config.Site

	posts, err := s.posts(ctx)
	if err != nil {
		return err
	}
	recent := make([]blog.Post, len(posts))
	copy(recent, posts)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date.Time)
	})
	if len(recent) > feedSize {
		recent = recent[:feedSize]
	}

	feed := &feeds.Feed{
		Title:       site.Title,
		Link:        &feeds.Link{Href: siteURL},
		Description: site.Description,
		Author:      &feeds.Author{Name: site.Author},
		Created:     s.now(),
	}
	if len(recent) > 0 {
		feed.Updated = recent[0].Date.Time
	}

	for _, post := range recent {
		item := &feeds.Item{
			Id:          siteURL + "/posts/" + post.Slug,
			Title:       post.Title,
			Link:        &feeds.Link{Href: siteURL + "/posts/" + post.Slug},
			Description: post.Excerpt,
			Author:      &feeds.Author{Name: post.Author},
			Created:     post.Date.Time,
		}
		if a, err := s.Articles.Load(ctx, post.Slug); err == nil && !a.Placeholder {
			item.Content = string(a.HTML)
		}
		feed.Items = append(feed.Items, item)
	}

	rss, err := feed.ToRss()
	if err != nil {
		s.Logger.Error("RSS error", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate RSS")
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}
