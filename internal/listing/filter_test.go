package listing

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/syn-studios/presscanvas-blog/internal/blog"
)

func post(id, title string, tags ...string) blog.Post {
	return blog.Post{
		ID:      id,
		Title:   title,
		Slug:    "post-" + id,
		Excerpt: "excerpt for " + title,
		Author:  "Author " + id,
		Tags:    tags,
	}
}

func slugs(posts []blog.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Slug)
	}
	return out
}

func samplePosts() []blog.Post {
	return []blog.Post{
		post("1", "Concurrency in Go", "go", "systems"),
		post("2", "Responsive Layouts", "web", "css"),
		post("3", "Building a Parser", "go", "compilers"),
		{ID: "4", Title: "Notes", Slug: "post-4", Excerpt: "Ownership and BORROWING", Author: "Grace", Tags: []string{"rust"}},
		post("5", "Äpfel und Birnen", "misc"),
	}
}

func TestFilterText(t *testing.T) {
	posts := samplePosts()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty accepts all", text: "", want: []string{"post-1", "post-2", "post-3", "post-4", "post-5"}},
		{name: "whitespace accepts all", text: "   \t", want: []string{"post-1", "post-2", "post-3", "post-4", "post-5"}},
		{name: "title case insensitive", text: "CONCURRENCY", want: []string{"post-1"}},
		{name: "trimmed", text: "  parser  ", want: []string{"post-3"}},
		{name: "excerpt", text: "borrowing", want: []string{"post-4"}},
		{name: "author", text: "grace", want: []string{"post-4"}},
		{name: "tag substring", text: "compil", want: []string{"post-3"}},
		{name: "tag exact", text: "go", want: []string{"post-1", "post-3"}},
		{name: "unicode folding", text: "äPFEL", want: []string{"post-5"}},
		{name: "no match", text: "kubernetes", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slugs(Filter(posts, Query{Text: tt.text}))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterTags(t *testing.T) {
	posts := samplePosts()

	tests := []struct {
		name string
		tags []string
		want []string
	}{
		{name: "no tags accepts all", tags: nil, want: []string{"post-1", "post-2", "post-3", "post-4", "post-5"}},
		{name: "single tag", tags: []string{"go"}, want: []string{"post-1", "post-3"}},
		{name: "tags are OR-ed", tags: []string{"web", "rust"}, want: []string{"post-2", "post-4"}},
		{name: "selection order irrelevant", tags: []string{"rust", "web"}, want: []string{"post-2", "post-4"}},
		{name: "exact tag match only", tags: []string{"Go"}, want: []string{}},
		{name: "unknown tag", tags: []string{"haskell"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slugs(Filter(posts, Query{Tags: tt.tags}))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterCombinesTextAndTags(t *testing.T) {
	posts := samplePosts()

	got := Filter(posts, Query{Text: "parser", Tags: []string{"go"}})
	assert.Equal(t, []string{"post-3"}, slugs(got))

	got = Filter(posts, Query{Text: "parser", Tags: []string{"web"}})
	assert.Empty(t, got)
}

func TestFilterSingleTagScenario(t *testing.T) {
	posts := []blog.Post{
		post("1", "First", "go", "systems"),
		post("2", "Second", "web"),
	}

	got := Filter(posts, Query{Tags: []string{"go"}})
	assert.Equal(t, []string{"post-1"}, slugs(got))
}

func TestFilterEmptyInput(t *testing.T) {
	assert.Empty(t, Filter(nil, Query{Text: "go", Tags: []string{"go"}}))
	assert.NotNil(t, Filter(nil, Query{}))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	posts := samplePosts()
	before := slugs(posts)

	_ = Filter(posts, Query{Text: "go"})
	assert.Equal(t, before, slugs(posts))
}

func TestVocabulary(t *testing.T) {
	got := Vocabulary(samplePosts())
	assert.Equal(t, []string{"compilers", "css", "go", "misc", "rust", "systems", "web"}, got)
	assert.Empty(t, Vocabulary(nil))
}

func TestQueryToggleTag(t *testing.T) {
	q := Query{Text: "x"}

	q = q.ToggleTag("go")
	q = q.ToggleTag("web")
	assert.Equal(t, []string{"go", "web"}, q.Tags)
	assert.True(t, q.HasTag("web"))

	q = q.ToggleTag("go")
	assert.Equal(t, []string{"web"}, q.Tags)
	assert.Equal(t, "x", q.Text)
	assert.True(t, q.Active())

	assert.False(t, Query{Text: "  "}.Active())
}

func TestQueryToggleTagDoesNotAlias(t *testing.T) {
	base := Query{Tags: make([]string, 1, 4)}
	base.Tags[0] = "a"

	left := base.ToggleTag("b")
	right := base.ToggleTag("c")
	assert.Equal(t, []string{"a", "b"}, left.Tags)
	assert.Equal(t, []string{"a", "c"}, right.Tags)
}

func ExampleFilter() {
	posts := []blog.Post{
		{Slug: "go-intro", Title: "Intro to Go", Tags: []string{"go"}},
		{Slug: "css-grid", Title: "CSS Grid", Tags: []string{"web"}},
	}
	for _, p := range Filter(posts, Query{Text: "GO"}) {
		fmt.Println(p.Slug)
	}
	// Output: go-intro
}
