package table

// Pagination describes the current page of a filtered collection.
type Pagination struct {
	Page     int
	Pages    int
	PageSize int
	Total    int
	// From and To bound the page as a half-open slice range.
	From int
	To   int
}

// Paginate clamps page into range. Pages is ceil(total / size).
func Paginate(total, page, size int) Pagination {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := (total + size - 1) / size
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}

	from := (page - 1) * size
	to := min(from+size, total)
	if from > total {
		from = total
	}
	return Pagination{Page: page, Pages: pages, PageSize: size, Total: total, From: from, To: to}
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.Pages }
func (p Pagination) First() int    { return 1 }
func (p Pagination) Prev() int     { return max(p.Page-1, 1) }
func (p Pagination) Next() int     { return min(p.Page+1, p.Last()) }

func (p Pagination) Last() int {
	return max(p.Pages, 1)
}

// Start is the 1-based index of the first row on the page, or 0 when empty.
func (p Pagination) Start() int {
	if p.To == 0 {
		return 0
	}
	return p.From + 1
}
