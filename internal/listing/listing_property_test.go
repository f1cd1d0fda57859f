package listing

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/syn-studios/presscanvas-blog/internal/blog"
)

var tagPool = []string{"go", "web", "rust", "systems", "css", "Go"}

// buildPosts turns generated titles and tag masks into a post list with
// unique ids and slugs.
func buildPosts(titles []string, masks []uint8) []blog.Post {
	posts := make([]blog.Post, len(titles))
	for i, title := range titles {
		var mask uint8
		if i < len(masks) {
			mask = masks[i]
		}
		var tags []string
		for bit, tag := range tagPool {
			if mask&(1<<bit) != 0 {
				tags = append(tags, tag)
			}
		}
		posts[i] = blog.Post{
			ID:      fmt.Sprint(i),
			Slug:    fmt.Sprintf("post-%d", i),
			Title:   title,
			Excerpt: strings.Repeat(title, 2),
			Author:  "author",
			Tags:    tags,
		}
	}
	return posts
}

func isSubsequence(sub, of []blog.Post) bool {
	j := 0
	for i := 0; i < len(of) && j < len(sub); i++ {
		if of[i].ID == sub[j].ID {
			j++
		}
	}
	return j == len(sub)
}

func textMatches(p blog.Post, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	fields := append([]string{p.Title, p.Excerpt, p.Author}, p.Tags...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func TestFilterProperties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	titles := gen.SliceOf(gen.AlphaString())
	masks := gen.SliceOf(gen.UInt8())
	queries := gen.OneGenOf(gen.AlphaString(), gen.Const(""), gen.Const("  "), gen.OneConstOf("go", "GO", " web ", "a"))
	selections := gen.SliceOf(gen.OneConstOf("go", "web", "rust", "systems", "css", "Go", "none"), reflect.TypeOf(""))

	properties.Property("text filter keeps exactly the matching posts", prop.ForAll(
		func(ts []string, ms []uint8, q string) bool {
			posts := buildPosts(ts, ms)
			got := Filter(posts, Query{Text: q})
			var want []blog.Post
			for _, p := range posts {
				if textMatches(p, q) {
					want = append(want, p)
				}
			}
			return len(got) == len(want) && isSubsequence(want, got)
		},
		titles, masks, queries,
	))

	properties.Property("blank query with no tags is the identity", prop.ForAll(
		func(ts []string, ms []uint8) bool {
			posts := buildPosts(ts, ms)
			got := Filter(posts, Query{Text: "   "})
			return len(got) == len(posts) && isSubsequence(posts, got)
		},
		titles, masks,
	))

	properties.Property("tag filter keeps posts intersecting the selection", prop.ForAll(
		func(ts []string, ms []uint8, sel []string) bool {
			posts := buildPosts(ts, ms)
			got := Filter(posts, Query{Tags: sel})
			count := 0
			for _, p := range posts {
				if len(sel) == 0 {
					count++
					continue
				}
				for _, tag := range p.Tags {
					if slices.Contains(sel, tag) {
						count++
						break
					}
				}
			}
			return len(got) == count
		},
		titles, masks, selections,
	))

	properties.Property("result is an ordered subsequence", prop.ForAll(
		func(ts []string, ms []uint8, q string, sel []string) bool {
			posts := buildPosts(ts, ms)
			return isSubsequence(Filter(posts, Query{Text: q, Tags: sel}), posts)
		},
		titles, masks, queries, selections,
	))

	properties.Property("filter is idempotent and deterministic", prop.ForAll(
		func(ts []string, ms []uint8, q string, sel []string) bool {
			posts := buildPosts(ts, ms)
			query := Query{Text: q, Tags: sel}
			once := Filter(posts, query)
			twice := Filter(once, query)
			return reflect.DeepEqual(once, twice) && reflect.DeepEqual(once, Filter(posts, query))
		},
		titles, masks, queries, selections,
	))

	properties.TestingRun(t)
}

func TestPaginateProperties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("pages partition the items", prop.ForAll(
		func(n, size int) bool {
			items := make([]int, n)
			for i := range items {
				items[i] = i
			}
			count := PageCount(n, size)
			if count != (n+size-1)/size {
				return false
			}

			seen := map[int]bool{}
			total := 0
			for page := 1; page <= count; page++ {
				for _, item := range Paginate(items, size, page).Items {
					if seen[item] {
						return false
					}
					seen[item] = true
					total++
				}
			}
			return total == n
		},
		gen.IntRange(0, 200),
		gen.IntRange(1, 25),
	))

	properties.Property("pages past the end are empty", prop.ForAll(
		func(n, size, extra int) bool {
			items := make([]int, n)
			return len(Paginate(items, size, PageCount(n, size)+extra).Items) == 0
		},
		gen.IntRange(0, 100),
		gen.IntRange(1, 10),
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t)
}
