// Package markdown turns post files into HTML: frontmatter handling, the
// goldmark renderer with sanitising, and a terminal renderer for the CLI.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown bodies to HTML.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

type Option func(*Renderer)

// WithoutSanitizer emits goldmark output as is, raw HTML included.
func WithoutSanitizer() Option {
	return func(r *Renderer) {
		r.policy = nil
	}
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy: newPolicy(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w+-]+$`)).OnElements("code")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Render converts a markdown body (frontmatter already removed) to HTML.
func (r *Renderer) Render(src string) (out template.HTML, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = ""
			err = fmt.Errorf("markdown render panic: %v", rec)
		}
	}()

	if strings.TrimSpace(src) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	if r.policy == nil {
		return template.HTML(buf.String()), nil
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// RenderDocument strips the frontmatter of raw and renders the rest.
func (r *Renderer) RenderDocument(raw string) (template.HTML, error) {
	return r.Render(StripFrontmatter(raw))
}
