package web

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/syn-studios/presscanvas-blog/internal/blog"
	"github.com/syn-studios/presscanvas-blog/internal/editor"
	"github.com/syn-studios/presscanvas-blog/internal/listing"
)

// Index renders the home feed. Query and page come from the URL: q, any
// number of tag parameters, and the page either as /page/:page or ?page=.
func (s *Server) Index(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}

	posts, err := s.posts(c.Request().Context())
	if err != nil {
		return err
	}

	session := listing.NewSession(posts, s.Config.Listing.PageSize)
	session.SetQuery(queryParams(c))
	if !session.GoTo(page) {
		return echo.NewHTTPError(http.StatusNotFound, "This page does not exist.")
	}

	view := session.View()
	data := s.baseData(c)
	data["View"] = view
	if page > 1 {
		data["Title"] = "Page " + strconv.Itoa(page) + " - " + s.Config.Site.Title
	}
	data["CanonicalURL"] = s.Config.Server.BaseURL + feedURL(listing.Query{}, page)

	return s.render(c, http.StatusOK, "index.html", data)
}

func (s *Server) PostDetail(c echo.Context) error {
	slug := c.Param("slug")
	a, err := s.Articles.Load(c.Request().Context(), slug)
	if errors.Is(err, blog.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "The post you're looking for doesn't exist.")
	}
	if err != nil {
		return err
	}

	posts, err := s.posts(c.Request().Context())
	if err != nil {
		return err
	}

	data := s.baseData(c)
	data["Article"] = a
	data["Related"] = listing.Related(posts, a.Post, s.Config.Listing.Related)
	data["Title"] = a.Post.Title + " - " + s.Config.Site.Title
	if a.Post.Excerpt != "" {
		data["Description"] = a.Post.Excerpt
	}
	if len(a.Post.Tags) > 0 {
		data["Keywords"] = strings.Join(a.Post.Tags, ", ")
	}
	data["CoverImage"] = a.Post.CoverImage
	data["CanonicalURL"] = s.Config.Server.BaseURL + "/posts/" + a.Post.Slug

	return s.render(c, http.StatusOK, "post.html", data)
}

func (s *Server) EditorForm(c echo.Context) error {
	data := s.baseData(c)
	data["Title"] = "Write a Post - " + s.Config.Site.Title
	data["Draft"] = editor.Draft{}
	return s.render(c, http.StatusOK, "editor.html", data)
}

// EditorGenerate turns the submitted form into a markdown document. Missing
// required fields re-render the form with a notice and no output.
func (s *Server) EditorGenerate(c echo.Context) error {
	draft := draftFromForm(c)

	data := s.baseData(c)
	data["Title"] = "Write a Post - " + s.Config.Site.Title
	data["Draft"] = draft

	doc, err := draft.Generate(s.now())
	var verr *editor.ValidationError
	if errors.As(err, &verr) {
		data["Notice"] = verr
		return s.render(c, http.StatusUnprocessableEntity, "editor.html", data)
	}
	if err != nil {
		return err
	}

	data["Document"] = doc
	if preview, err := s.Renderer.Render(draft.Content); err != nil {
		s.Logger.Warn("editor preview failed", zap.Error(err))
	} else {
		data["Preview"] = preview
	}
	return s.render(c, http.StatusOK, "editor.html", data)
}

func (s *Server) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// HTTPErrorHandler renders errors as the error page, or as JSON under /api.
func (s *Server) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "Something went wrong."
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}
	if code >= http.StatusInternalServerError {
		s.Logger.Error("request failed", zap.String("path", c.Request().URL.Path), zap.Error(err))
	}

	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		if err := c.JSON(code, apiError{Error: msg}); err != nil {
			s.Logger.Error("writing error response", zap.Error(err))
		}
		return
	}

	data := s.baseData(c)
	data["Heading"] = http.StatusText(code)
	if code == http.StatusNotFound {
		data["Heading"] = "Not Found"
	}
	data["Message"] = msg
	data["Title"] = data["Heading"].(string) + " - " + s.Config.Site.Title
	if err := s.render(c, code, "error.html", data); err != nil {
		s.Logger.Error("rendering error page", zap.Error(err))
		_ = c.String(code, msg)
	}
}

func (s *Server) render(c echo.Context, code int, page string, data map[string]any) error {
	t, ok := s.templates[page]
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "unknown template "+page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		return err
	}
	return c.HTMLBlob(code, buf.Bytes())
}

func (s *Server) baseData(c echo.Context) map[string]any {
	site := s.Config.Site
	return map[string]any{
		"Title":        site.Title,
		"SiteTitle":    site.Title,
		"Tagline":      site.Tagline,
		"Description":  site.Description,
		"Keywords":     "",
		"CoverImage":   "",
		"CanonicalURL": "",
		"SiteURL":      s.Config.Server.BaseURL,
		"CurrentPath":  c.Request().URL.Path,
	}
}

func pageParam(c echo.Context) (int, error) {
	raw := c.Param("page")
	if raw == "" {
		raw = c.QueryParam("page")
	}
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "This page does not exist.")
	}
	return page, nil
}

func queryParams(c echo.Context) listing.Query {
	q := listing.Query{Text: c.QueryParam("q")}
	for _, tag := range c.QueryParams()["tag"] {
		if tag = strings.TrimSpace(tag); tag != "" && !q.HasTag(tag) {
			q.Tags = append(q.Tags, tag)
		}
	}
	return q
}

// draftFromForm replays the title edit on top of the title the form was
// last rendered with, so a slug that was derived from that title follows
// the new one while a hand-edited slug is kept.
func draftFromForm(c echo.Context) editor.Draft {
	d := editor.Draft{
		Title:   c.FormValue("previous_title"),
		Slug:    strings.TrimSpace(c.FormValue("slug")),
		Excerpt: c.FormValue("excerpt"),
		Tags:    c.FormValue("tags"),
		Author:  c.FormValue("author"),
		Content: c.FormValue("content"),
	}
	d.SetTitle(c.FormValue("title"))
	return d
}
