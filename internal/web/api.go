package web

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/syn-studios/presscanvas-blog/internal/blog"
	"github.com/syn-studios/presscanvas-blog/internal/editor"
	"github.com/syn-studios/presscanvas-blog/internal/listing"
)

type apiError struct {
	Error   string   `json:"error"`
	Fields  []string `json:"fields,omitempty"`
	Invalid []string `json:"invalid,omitempty"`
}

type postsResponse struct {
	Posts     []blog.Post   `json:"posts"`
	Query     listing.Query `json:"query"`
	Page      int           `json:"page"`
	PageSize  int           `json:"pageSize"`
	PageCount int           `json:"pageCount"`
	Total     int           `json:"total"`
	Matches   int           `json:"matches"`
}

type postResponse struct {
	Post        blog.Post     `json:"post"`
	HTML        template.HTML `json:"html"`
	Placeholder bool          `json:"placeholder"`
	Related     []blog.Post   `json:"related"`
}

type draftRequest struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Excerpt string `json:"excerpt"`
	Tags    string `json:"tags"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

// APIPosts returns one page of the filtered repository. Unlike the HTML
// feed the featured post is not set apart.
func (s *Server) APIPosts(c echo.Context) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "page must be a positive integer")
		}
		page = n
	}

	posts, err := s.posts(c.Request().Context())
	if err != nil {
		return err
	}

	q := queryParams(c)
	filtered := listing.Filter(posts, q)
	p := listing.Paginate(filtered, s.Config.Listing.PageSize, page)

	return c.JSON(http.StatusOK, postsResponse{
		Posts:     p.Items,
		Query:     q,
		Page:      p.Number,
		PageSize:  p.Size,
		PageCount: p.PageCount,
		Total:     len(posts),
		Matches:   len(filtered),
	})
}

func (s *Server) APIPost(c echo.Context) error {
	a, err := s.Articles.Load(c.Request().Context(), c.Param("slug"))
	if errors.Is(err, blog.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	if err != nil {
		return err
	}

	posts, err := s.posts(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, postResponse{
		Post:        a.Post,
		HTML:        a.HTML,
		Placeholder: a.Placeholder,
		Related:     listing.Related(posts, a.Post, s.Config.Listing.Related),
	})
}

func (s *Server) APITags(c echo.Context) error {
	posts, err := s.posts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing.Vocabulary(posts))
}

// APIEditor generates the markdown file for a JSON draft and returns it as
// an attachment.
func (s *Server) APIEditor(c echo.Context) error {
	var req draftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid draft")
	}

	draft := editor.Draft{
		Title:   req.Title,
		Slug:    req.Slug,
		Excerpt: req.Excerpt,
		Tags:    req.Tags,
		Author:  req.Author,
		Content: req.Content,
	}
	doc, err := draft.Generate(s.now())
	var verr *editor.ValidationError
	if errors.As(err, &verr) {
		msg := "Please fill in at least the title and content fields."
		if len(verr.Fields) == 0 {
			msg = "Slugs may only contain lower-case letters, digits and single hyphens."
		}
		return c.JSON(http.StatusUnprocessableEntity, apiError{
			Error:   msg,
			Fields:  verr.Fields,
			Invalid: verr.Invalid,
		})
	}
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(doc.Markdown))
}
