package listview

// Page is one page of a list
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	Total      int
	TotalPages int
}

// Paginate returns the 1-based page of records. Pages outside the range are empty.
func Paginate[T any](records []T, pageSize, page int) Page[T] {
	if pageSize <= 0 {
		pageSize = 10
	}

	p := Page[T]{
		Items:      []T{},
		Number:     page,
		Size:       pageSize,
		Total:      len(records),
		TotalPages: (len(records) + pageSize - 1) / pageSize,
	}

	if page < 1 {
		return p
	}
	start := (page - 1) * pageSize
	if start >= len(records) {
		return p
	}
	end := min(start+pageSize, len(records))
	p.Items = records[start:end]
	return p
}

// From is the 1-based position of the first item on the page, 0 when empty
func (p Page[T]) From() int {
	if len(p.Items) == 0 {
		return 0
	}
	return (p.Number-1)*p.Size + 1
}

// To is the position of the last item on the page
func (p Page[T]) To() int {
	if len(p.Items) == 0 {
		return 0
	}
	return p.From() + len(p.Items) - 1
}

// HasPrev reports whether a previous page exists
func (p Page[T]) HasPrev() bool {
	return p.Number > 1
}

// HasNext reports whether a next page exists
func (p Page[T]) HasNext() bool {
	return p.Number < p.TotalPages
}

// PrevNumber is the previous page number
func (p Page[T]) PrevNumber() int {
	return p.Number - 1
}

// NextNumber is the next page number
func (p Page[T]) NextNumber() int {
	return p.Number + 1
}

// Numbers lists every page number for the pager
func (p Page[T]) Numbers() []int {
	nums := make([]int, p.TotalPages)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}
