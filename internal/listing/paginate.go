package listing

// DefaultPageSize is the number of posts per feed page.
const DefaultPageSize = 6

// Page is one window over a sequence of items.
type Page[T any] struct {
	Items     []T
	Number    int
	Size      int
	PageCount int
	Total     int
}

// Paginate returns the items of page number page (1-indexed). PageCount is
// ceil(len(items)/pageSize), which is zero for an empty list. A page outside
// [1, PageCount] yields no items rather than an error.
func Paginate[T any](items []T, pageSize, page int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(items)
	p := Page[T]{
		Items:     []T{},
		Number:    page,
		Size:      pageSize,
		PageCount: PageCount(total, pageSize),
		Total:     total,
	}
	if page < 1 {
		return p
	}

	start := (page - 1) * pageSize
	if start >= total {
		return p
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	p.Items = items[start:end:end]
	return p
}

func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize < 1 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

func (p Page[T]) HasPrev() bool { return p.Number > 1 }

func (p Page[T]) HasNext() bool { return p.Number < p.PageCount }

func (p Page[T]) PrevNumber() int { return max(p.Number-1, 1) }

func (p Page[T]) NextNumber() int { return min(p.Number+1, max(p.PageCount, 1)) }

// Numbers lists the page numbers 1..PageCount for a pager.
func (p Page[T]) Numbers() []int {
	numbers := make([]int, p.PageCount)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return numbers
}
