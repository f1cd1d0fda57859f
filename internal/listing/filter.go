// Package listing implements the home feed engine: text and tag filtering
// over the post repository, pagination, and the per-view session state that
// ties the two together.
package listing

import (
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syn-studios/presscanvas-blog/internal/blog"
)

// Query is the user's filter input. Tags keeps click order for display;
// only membership matters for matching.
type Query struct {
	Text string   `json:"q"`
	Tags []string `json:"tags"`
}

// Active reports whether any filter would restrict the result.
func (q Query) Active() bool {
	return strings.TrimSpace(q.Text) != "" || len(q.Tags) > 0
}

func (q Query) HasTag(tag string) bool {
	return slices.Contains(q.Tags, tag)
}

// ToggleTag adds tag when absent and removes it when present.
func (q Query) ToggleTag(tag string) Query {
	out := Query{Text: q.Text}
	if q.HasTag(tag) {
		for _, t := range q.Tags {
			if t != tag {
				out.Tags = append(out.Tags, t)
			}
		}
		return out
	}
	out.Tags = append(slices.Clone(q.Tags), tag)
	return out
}

// Filter returns the posts matching both the text and the tag dimension of
// q, in their original order. A post matches the text when the trimmed,
// lower-cased query is a substring of its title, excerpt, author or one of
// its tags. It matches the tags when none are selected or when it carries at
// least one of them.
func Filter(posts []blog.Post, q Query) []blog.Post {
	text := normalize(q.Text)
	selected := make(map[string]struct{}, len(q.Tags))
	for _, tag := range q.Tags {
		selected[tag] = struct{}{}
	}

	result := make([]blog.Post, 0, len(posts))
	for _, post := range posts {
		if text != "" && !matchesText(post, text) {
			continue
		}
		if len(selected) > 0 && !matchesAnyTag(post, selected) {
			continue
		}
		result = append(result, post)
	}
	return result
}

// Vocabulary returns every tag used by posts, deduplicated and sorted.
func Vocabulary(posts []blog.Post) []string {
	set := map[string]struct{}{}
	for _, post := range posts {
		for _, tag := range post.Tags {
			set[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func normalize(s string) string {
	return lower(strings.TrimSpace(s))
}

// lower uses full Unicode case mapping; a Caser is not safe for concurrent
// use so each call gets its own.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func matchesText(post blog.Post, text string) bool {
	if strings.Contains(lower(post.Title), text) ||
		strings.Contains(lower(post.Excerpt), text) ||
		strings.Contains(lower(post.Author), text) {
		return true
	}
	for _, tag := range post.Tags {
		if strings.Contains(lower(tag), text) {
			return true
		}
	}
	return false
}

func matchesAnyTag(post blog.Post, selected map[string]struct{}) bool {
	for _, tag := range post.Tags {
		if _, ok := selected[tag]; ok {
			return true
		}
	}
	return false
}
