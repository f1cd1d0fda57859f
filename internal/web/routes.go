package web

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the public site, the JSON API and the operational endpoints.
func (s *Server) Routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.HTTPErrorHandler

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLogger(s.Logger))
	e.Use(middleware.Recover())

	// pages
	e.GET("/", s.Index)
	e.GET("/page/:page", s.Index)
	e.GET("/posts/:slug", s.PostDetail)
	e.GET("/editor", s.EditorForm)
	e.POST("/editor", s.EditorGenerate)
	e.GET("/feed.xml", s.RSS)
	e.GET("/sitemap.xml", s.Sitemap)

	api := e.Group("/api")
	api.GET("/posts", s.APIPosts)
	api.GET("/posts/:slug", s.APIPost)
	api.GET("/tags", s.APITags)
	api.POST("/editor", s.APIEditor)

	e.GET("/healthz", s.Healthz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
