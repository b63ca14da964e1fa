package grid

// Paginator slices a processed row set into pages. Page numbers are
// 1-based.
type Paginator struct {
	page     int
	pageSize int
}

// DefaultPageSize is used when no preference is stored.
const DefaultPageSize = 10

// NewPaginator returns a paginator at page 1 with the given page size.
// Non-positive sizes fall back to DefaultPageSize.
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Paginator{page: 1, pageSize: pageSize}
}

// Page returns the current 1-based page number.
func (p *Paginator) Page() int { return p.page }

// PageSize returns the current page size.
func (p *Paginator) PageSize() int { return p.pageSize }

// TotalPages returns the number of pages for total rows, at least 1 so a
// grid with no rows still has a current page.
func (p *Paginator) TotalPages(total int) int {
	pages := (total + p.pageSize - 1) / p.pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// SetPage moves to the given page, clamped to [1, TotalPages(total)].
func (p *Paginator) SetPage(page, total int) {
	if page < 1 {
		page = 1
	}
	if max := p.TotalPages(total); page > max {
		page = max
	}
	p.page = page
}

// SetPageSize changes the page size and resets to page 1, so the shown
// window never starts past the end of the data.
func (p *Paginator) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	p.pageSize = size
	p.page = 1
}

// Clamp pulls the current page back into range after the row count
// shrinks, for example when a filter tightens.
func (p *Paginator) Clamp(total int) {
	if max := p.TotalPages(total); p.page > max {
		p.page = max
	}
}

// Slice returns the current page's window of rows.
func (p *Paginator) Slice(rows []Row) []Row {
	start := (p.page - 1) * p.pageSize
	if start >= len(rows) {
		return nil
	}
	end := start + p.pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// Range returns the 1-based inclusive row range shown on the current
// page, for the "Showing X-Y of Z" label. An empty set returns 0, 0.
func (p *Paginator) Range(total int) (first, last int) {
	if total == 0 {
		return 0, 0
	}
	first = (p.page-1)*p.pageSize + 1
	last = first + p.pageSize - 1
	if last > total {
		last = total
	}
	if first > total {
		return 0, 0
	}
	return first, last
}
