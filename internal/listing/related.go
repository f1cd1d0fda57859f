package listing

import (
	"sort"

	"github.com/syn-studios/presscanvas-blog/internal/blog"
)

// Related returns up to n other posts sharing tags with current, ranked by
// the number of shared tags and then by repository order.
func Related(posts []blog.Post, current blog.Post, n int) []blog.Post {
	if n < 1 || len(current.Tags) == 0 {
		return []blog.Post{}
	}

	currentTags := make(map[string]bool, len(current.Tags))
	for _, t := range current.Tags {
		currentTags[t] = true
	}

	type scoredPost struct {
		post  blog.Post
		score int
		index int
	}

	var candidates []scoredPost
	for i, p := range posts {
		if p.Slug == current.Slug {
			continue
		}
		score := 0
		for _, t := range p.Tags {
			if currentTags[t] {
				score++
			}
		}
		if score > 0 {
			candidates = append(candidates, scoredPost{post: p, score: score, index: i})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].index < candidates[j].index
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}

	result := make([]blog.Post, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, c.post)
	}
	return result
}
