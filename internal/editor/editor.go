// Package editor turns a post draft into a frontmatter-prefixed markdown
// file ready to be committed to the content directory.
package editor

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/syn-studios/presscanvas-blog/internal/blog"
)

const (
	DefaultAuthor     = "Anonymous"
	DefaultCoverImage = "https://images.unsplash.com/photo-1499750310107-5fef28a66643?w=800"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidSlug   = errors.New("slug is not URL-safe")
)

// ValidationError lists the required draft fields that were left empty
// and the fields whose value cannot be used.
type ValidationError struct {
	Fields  []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Fields) > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s", ErrMissingFields, strings.Join(e.Fields, ", ")))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, fmt.Sprintf("invalid fields: %s", strings.Join(e.Invalid, ", ")))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error {
	var errs []error
	if len(e.Fields) > 0 {
		errs = append(errs, ErrMissingFields)
	}
	if len(e.Invalid) > 0 {
		errs = append(errs, ErrInvalidSlug)
	}
	return errs
}

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases text, collapses every run of characters outside
// [a-z0-9] to one hyphen and trims hyphens from both ends.
func Slugify(text string) string {
	s := nonSlugRun.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(s, "-")
}

// SplitTags splits a comma separated tag field, trimming each entry and
// dropping empty ones.
func SplitTags(field string) []string {
	tags := []string{}
	for _, part := range strings.Split(field, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Draft is the editor form state.
type Draft struct {
	Title   string
	Slug    string
	Excerpt string
	Tags    string
	Author  string
	Content string
}

// SetTitle updates the title and keeps the slug derived from it unless the
// slug was edited by hand.
func (d *Draft) SetTitle(title string) {
	if d.Slug == "" || d.Slug == Slugify(d.Title) {
		d.Slug = Slugify(title)
	}
	d.Title = title
}

func (d *Draft) SetSlug(slug string) {
	d.Slug = slug
}

// Clear resets every field.
func (d *Draft) Clear() {
	*d = Draft{}
}

// Validate reports the required fields that are blank and a slug that
// would not be a valid post slug or file name. A blank slug with a blank
// title is only reported as a missing title.
func (d Draft) Validate() error {
	var verr ValidationError
	if strings.TrimSpace(d.Title) == "" {
		verr.Fields = append(verr.Fields, "title")
	}
	if strings.TrimSpace(d.Content) == "" {
		verr.Fields = append(verr.Fields, "content")
	}
	titled := strings.TrimSpace(d.Title) != "" || strings.TrimSpace(d.Slug) != ""
	if titled && !blog.ValidSlug(d.ResolvedSlug()) {
		verr.Invalid = append(verr.Invalid, "slug")
	}
	if len(verr.Fields) > 0 || len(verr.Invalid) > 0 {
		return &verr
	}
	return nil
}

// ResolvedSlug is the slug the generated file will carry.
func (d Draft) ResolvedSlug() string {
	if s := strings.TrimSpace(d.Slug); s != "" {
		return s
	}
	return Slugify(d.Title)
}

// Document is a generated markdown file.
type Document struct {
	Filename string
	Slug     string
	Markdown string
}

// Generate renders the draft as markdown with a frontmatter block dated
// now (UTC). The content is appended byte for byte.
func (d Draft) Generate(now time.Time) (Document, error) {
	if err := d.Validate(); err != nil {
		return Document{}, err
	}

	slug := d.ResolvedSlug()
	excerpt := d.Excerpt
	if strings.TrimSpace(excerpt) == "" {
		excerpt = d.Title
	}
	author := strings.TrimSpace(d.Author)
	if author == "" {
		author = DefaultAuthor
	}

	tags := SplitTags(d.Tags)
	quoted := make([]string, len(tags))
	for i, tag := range tags {
		quoted[i] = strconv.Quote(tag)
	}

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", strconv.Quote(d.Title))
	fmt.Fprintf(&b, "date: %s\n", strconv.Quote(now.UTC().Format(blog.DateLayout)))
	fmt.Fprintf(&b, "slug: %s\n", strconv.Quote(slug))
	fmt.Fprintf(&b, "excerpt: %s\n", strconv.Quote(excerpt))
	fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(quoted, ", "))
	fmt.Fprintf(&b, "author: %s\n", strconv.Quote(author))
	fmt.Fprintf(&b, "coverImage: %s\n", strconv.Quote(DefaultCoverImage))
	b.WriteString("---\n\n")
	b.WriteString(d.Content)

	return Document{
		Filename: slug + ".md",
		Slug:     slug,
		Markdown: b.String(),
	}, nil
}

// Post builds the index record for a generated draft.
func (d Draft) Post(id string, now time.Time) (blog.Post, error) {
	if err := d.Validate(); err != nil {
		return blog.Post{}, err
	}
	excerpt := d.Excerpt
	if strings.TrimSpace(excerpt) == "" {
		excerpt = d.Title
	}
	author := strings.TrimSpace(d.Author)
	if author == "" {
		author = DefaultAuthor
	}
	utc := now.UTC()
	post := blog.Post{
		ID:         id,
		Title:      d.Title,
		Slug:       d.ResolvedSlug(),
		Date:       blog.NewDate(utc.Year(), utc.Month(), utc.Day()),
		Excerpt:    excerpt,
		CoverImage: DefaultCoverImage,
		Tags:       SplitTags(d.Tags),
		Author:     author,
		ReadTime:   blog.EstimateReadTime(d.Content),
	}
	if err := post.Validate(); err != nil {
		return blog.Post{}, err
	}
	return post, nil
}
