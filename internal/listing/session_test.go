package listing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syn-studios/presscanvas-blog/internal/blog"
)

func numbered(n int) []blog.Post {
	posts := make([]blog.Post, n)
	for i := range posts {
		tag := "even"
		if i%2 == 1 {
			tag = "odd"
		}
		posts[i] = post(fmt.Sprint(i), fmt.Sprintf("Post %d", i), tag)
	}
	return posts
}

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6}

	tests := []struct {
		name      string
		size      int
		page      int
		wantItems []int
		wantCount int
	}{
		{name: "first page", size: 6, page: 1, wantItems: []int{0, 1, 2, 3, 4, 5}, wantCount: 2},
		{name: "last partial page", size: 6, page: 2, wantItems: []int{6}, wantCount: 2},
		{name: "past the end", size: 6, page: 3, wantItems: []int{}, wantCount: 2},
		{name: "page zero", size: 6, page: 0, wantItems: []int{}, wantCount: 2},
		{name: "exact fit", size: 7, page: 1, wantItems: items, wantCount: 1},
		{name: "size one", size: 1, page: 4, wantItems: []int{3}, wantCount: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(items, tt.size, tt.page)
			assert.Equal(t, tt.wantItems, p.Items)
			assert.Equal(t, tt.wantCount, p.PageCount)
			assert.Equal(t, len(items), p.Total)
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate([]blog.Post{}, 6, 1)
	assert.Equal(t, 0, p.PageCount)
	assert.Empty(t, p.Items)
	assert.False(t, p.HasNext())
	assert.False(t, p.HasPrev())
	assert.Empty(t, p.Numbers())
	assert.Equal(t, 1, p.NextNumber())
}

func TestPaginateItemsCannotGrowIntoNextPage(t *testing.T) {
	items := []int{0, 1, 2, 3}
	p := Paginate(items, 2, 1)
	_ = append(p.Items, 99)
	assert.Equal(t, []int{0, 1, 2, 3}, items)
}

func TestPageNavigationHelpers(t *testing.T) {
	p := Paginate(make([]int, 13), 6, 2)
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 1, p.PrevNumber())
	assert.Equal(t, 3, p.NextNumber())
	assert.Equal(t, []int{1, 2, 3}, p.Numbers())

	last := Paginate(make([]int, 13), 6, 3)
	assert.False(t, last.HasNext())
	assert.Equal(t, 3, last.NextNumber())
}

func TestSessionSevenPostsScenario(t *testing.T) {
	posts := numbered(7)
	s := NewSession(posts, DefaultPageSize)

	assert.Equal(t, 2, s.PageCount())

	first := Paginate(s.Filtered(), DefaultPageSize, s.Page())
	assert.Equal(t, posts[:6], first.Items)

	s.Next()
	second := Paginate(s.Filtered(), DefaultPageSize, s.Page())
	assert.Equal(t, posts[6:], second.Items)
}

func TestSessionQueryChangeResetsPage(t *testing.T) {
	s := NewSession(numbered(20), DefaultPageSize)
	require.True(t, s.GoTo(3))
	assert.Equal(t, 3, s.Page())

	s.SetText("post 1")
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, 11, len(s.Filtered())) // Post 1, Post 10..19

	require.True(t, s.GoTo(2))
	s.ToggleTag("odd")
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, []string{"odd"}, s.Query().Tags)

	require.True(t, s.GoTo(1))
	s.Next()
	s.ClearFilters()
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, Query{}, s.Query())
	assert.Len(t, s.Filtered(), 20)
}

func TestSessionNavigationClamps(t *testing.T) {
	s := NewSession(numbered(13), DefaultPageSize)

	s.Prev()
	assert.Equal(t, 1, s.Page())

	s.Next()
	s.Next()
	s.Next()
	assert.Equal(t, 3, s.Page())

	assert.False(t, s.GoTo(4))
	assert.False(t, s.GoTo(0))
	assert.Equal(t, 3, s.Page())
}

func TestSessionEmptyRepository(t *testing.T) {
	s := NewSession(nil, DefaultPageSize)
	assert.Equal(t, 0, s.PageCount())
	assert.True(t, s.GoTo(1))
	s.Next()
	assert.Equal(t, 1, s.Page())

	v := s.View()
	assert.Nil(t, v.Featured)
	assert.Empty(t, v.Posts)
	assert.Equal(t, unfilteredSummary, v.Summary)
}

func TestSessionViewExcludesFeatured(t *testing.T) {
	posts := numbered(8)
	s := NewSession(posts, DefaultPageSize)

	v := s.View()
	require.NotNil(t, v.Featured)
	assert.Equal(t, posts[0].ID, v.Featured.ID)
	assert.Len(t, v.Page.Items, 6)
	assert.Len(t, v.Posts, 5, "featured post is dropped from the first page grid")
	assert.Equal(t, unfilteredSummary, v.Summary)

	s.Next()
	v = s.View()
	assert.Len(t, v.Posts, 2)
	assert.Equal(t, posts[0].ID, v.Featured.ID)
}

func TestSessionViewFilteredSummary(t *testing.T) {
	posts := numbered(8)
	s := NewSession(posts, DefaultPageSize)

	s.ToggleTag("odd")
	v := s.View()
	assert.Equal(t, 4, v.Matches)
	assert.Equal(t, "4 posts found", v.Summary)
	assert.Len(t, v.Posts, 4, "featured post is even so nothing is excluded")
	assert.Equal(t, []string{"even", "odd"}, v.Tags)

	s.SetText("post 3")
	assert.Equal(t, "1 post found", s.View().Summary)

	s.SetText("nothing matches this")
	assert.Equal(t, "0 posts found", s.View().Summary)
}

func TestFilterSummary(t *testing.T) {
	tests := []struct {
		name    string
		matches int
		q       Query
		want    string
	}{
		{name: "inactive", matches: 7, q: Query{Text: "  "}, want: ""},
		{name: "text", matches: 2, q: Query{Text: " ada "}, want: `2 posts found for "ada"`},
		{name: "single", matches: 1, q: Query{Tags: []string{"go"}}, want: "1 post found with tags: go"},
		{name: "both", matches: 0, q: Query{Text: "x", Tags: []string{"web", "css"}}, want: `0 posts found for "x" with tags: web, css`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterSummary(tt.matches, tt.q))
		})
	}
}

func TestSessionViewFilterSummary(t *testing.T) {
	s := NewSession(numbered(8), DefaultPageSize)
	assert.Empty(t, s.View().FilterSummary)

	s.ToggleTag("odd")
	assert.Equal(t, "4 posts found with tags: odd", s.View().FilterSummary)

	s.ClearFilters()
	assert.Empty(t, s.View().FilterSummary)
}

func TestRelated(t *testing.T) {
	posts := []blog.Post{
		post("1", "A", "go", "systems"),
		post("2", "B", "go"),
		post("3", "C", "go", "systems"),
		post("4", "D", "web"),
		post("5", "E", "systems"),
	}

	got := Related(posts, posts[0], 3)
	assert.Equal(t, []string{"post-3", "post-2", "post-5"}, slugs(got))

	assert.Len(t, Related(posts, posts[0], 1), 1)
	assert.Empty(t, Related(posts, posts[3], 3))
	assert.Empty(t, Related(posts, blog.Post{Slug: "x"}, 3))
}
