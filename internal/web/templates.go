package web

import (
	"embed"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/syn-studios/presscanvas-blog/internal/blog"
	"github.com/syn-studios/presscanvas-blog/internal/listing"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"index.html", "post.html", "editor.html", "error.html"}

type cardData struct {
	Post     blog.Post
	Featured bool
}

var funcs = template.FuncMap{
	"formatDate": func(d blog.Date) string {
		if d.IsZero() {
			return ""
		}
		return d.Format("January 2, 2006")
	},
	"joinTags": func(tags []string) string {
		return strings.Join(tags, ", ")
	},
	"card": func(post blog.Post, featured bool) cardData {
		return cardData{Post: post, Featured: featured}
	},
	"feedURL": feedURL,
	"tagURL": func(q listing.Query, tag string) string {
		return feedURL(q.ToggleTag(tag), 1)
	},
}

func parseTemplates() (map[string]*template.Template, error) {
	set := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New("").Funcs(funcs).ParseFS(templateFS,
			"templates/base.html",
			"templates/card.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, err
		}
		set[page] = t
	}
	return set, nil
}

// feedURL links to page of the home feed under q. Page 1 is "/", later
// pages are "/page/N"; the query travels as q and repeated tag parameters.
func feedURL(q listing.Query, page int) string {
	path := "/"
	if page > 1 {
		path = "/page/" + strconv.Itoa(page)
	}
	v := url.Values{}
	if strings.TrimSpace(q.Text) != "" {
		v.Set("q", q.Text)
	}
	for _, tag := range q.Tags {
		v.Add("tag", tag)
	}
	if enc := v.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}
