package listing

import (
	"fmt"
	"strings"

	"github.com/syn-studios/presscanvas-blog/internal/blog"
)

const (
	unfilteredSummary = "Discover our latest articles and insights"
)

// Session holds the feed state of one view: the loaded posts, the current
// query, the derived filtered result and the current page. Every query
// change recomputes the result and moves back to page 1.
//
// A Session is owned by a single flow and is not safe for concurrent use.
type Session struct {
	posts    []blog.Post
	pageSize int
	query    Query
	filtered []blog.Post
	page     int
}

func NewSession(posts []blog.Post, pageSize int) *Session {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	s := &Session{posts: posts, pageSize: pageSize}
	s.apply(Query{})
	return s
}

func (s *Session) Query() Query { return s.query }

func (s *Session) Filtered() []blog.Post { return s.filtered }

func (s *Session) Page() int { return s.page }

func (s *Session) PageCount() int { return PageCount(len(s.filtered), s.pageSize) }

func (s *Session) SetText(text string) {
	s.apply(Query{Text: text, Tags: s.query.Tags})
}

func (s *Session) ToggleTag(tag string) {
	s.apply(s.query.ToggleTag(tag))
}

func (s *Session) SetQuery(q Query) {
	s.apply(q)
}

// ClearFilters drops the text and all selected tags.
func (s *Session) ClearFilters() {
	s.apply(Query{})
}

// GoTo moves to page n. It reports false and leaves the page unchanged when
// n is outside [1, PageCount]; page 1 is always reachable.
func (s *Session) GoTo(n int) bool {
	if n < 1 || n > max(s.PageCount(), 1) {
		return false
	}
	s.page = n
	return true
}

func (s *Session) Next() {
	s.page = min(s.page+1, max(s.PageCount(), 1))
}

func (s *Session) Prev() {
	s.page = max(s.page-1, 1)
}

func (s *Session) apply(q Query) {
	s.query = q
	s.filtered = Filter(s.posts, q)
	s.page = 1
}

// View is what the feed renders for the current state.
type View struct {
	Featured      *blog.Post
	Posts         []blog.Post
	Page          Page[blog.Post]
	Query         Query
	Tags          []string
	Total         int
	Matches       int
	Summary       string
	FilterSummary string
}

// View derives the current page. The first post of the repository is
// featured and left out of the grid; the exclusion happens after
// pagination, so a page holding the featured post shows one card less.
func (s *Session) View() View {
	page := Paginate(s.filtered, s.pageSize, s.page)

	v := View{
		Page:    page,
		Query:   s.query,
		Tags:    Vocabulary(s.posts),
		Total:   len(s.posts),
		Matches: len(s.filtered),
		Posts:   page.Items,
	}

	if len(s.posts) > 0 {
		featured := s.posts[0]
		v.Featured = &featured
		grid := make([]blog.Post, 0, len(page.Items))
		for _, post := range page.Items {
			if post.ID != featured.ID {
				grid = append(grid, post)
			}
		}
		v.Posts = grid
	}

	v.Summary = Summary(len(s.filtered), len(s.posts))
	v.FilterSummary = FilterSummary(len(s.filtered), s.query)
	return v
}

// FilterSummary describes the active filters, e.g.
// `2 posts found for "go" with tags: web, css`.
func FilterSummary(matches int, q Query) string {
	if !q.Active() {
		return ""
	}
	noun := "posts"
	if matches == 1 {
		noun = "post"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s found", matches, noun)
	if text := strings.TrimSpace(q.Text); text != "" {
		b.WriteString(` for "` + text + `"`)
	}
	if len(q.Tags) > 0 {
		b.WriteString(" with tags: " + strings.Join(q.Tags, ", "))
	}
	return b.String()
}

// Summary is the heading shown above the grid.
func Summary(matches, total int) string {
	if matches == total {
		return unfilteredSummary
	}
	if matches == 1 {
		return "1 post found"
	}
	return fmt.Sprintf("%d posts found", matches)
}
