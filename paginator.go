package wristmenu

// Paginator browses a flat list too long for one screen, a page at a time. Above the items sits a band of page
// controls (next page, previous page, exit); moving up past the first item of a page enters the band.
type Paginator struct {
	page    int
	perPage int
	total   int
	meta    Meta
}

// NewPaginator returns a paginator showing itemsPerPage items per page. itemsPerPage below 1 is treated as 1.
func NewPaginator(itemsPerPage int) *Paginator {
	if itemsPerPage < 1 {
		itemsPerPage = 1
	}
	return &Paginator{perPage: itemsPerPage}
}

// Begin starts browsing a list of total items from the first page with the cursor out of the band.
func (p *Paginator) Begin(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	p.page = 0
	p.meta = MetaNone
}

func (p *Paginator) Page() int { return p.page }

// SetPage is used by the caller to report the page it is showing.
func (p *Paginator) SetPage(page int) { p.page = page }

func (p *Paginator) Meta() Meta { return p.meta }

func (p *Paginator) ItemsPerPage() int { return p.perPage }

func (p *Paginator) Total() int { return p.total }

// LastPage is the index of the last page that holds any items. A total that is an exact multiple of the page size
// does not get an empty trailing page.
func (p *Paginator) LastPage() int {
	if p.total == 0 {
		return 0
	}
	return (p.total - 1) / p.perPage
}

// PageCount is the number of pages; an empty list still has one (empty) page.
func (p *Paginator) PageCount() int {
	return p.LastPage() + 1
}

// ItemsOnPage is the number of items on the current page. Only the last page can hold fewer than ItemsPerPage.
func (p *Paginator) ItemsOnPage() int {
	if p.page < p.LastPage() {
		return p.perPage
	}
	n := p.total - p.page*p.perPage
	if n < 0 {
		return 0
	}
	return n
}

// HandleUp moves the cursor up. From the first item of the page it advances through the band controls instead (next,
// previous, exit, then next again), skipping previous on the first page, and returns true. Otherwise it decrements
// selected and returns false.
func (p *Paginator) HandleUp(selected *int) bool {
	if *selected > 0 {
		*selected--
		return false
	}

	p.meta++
	if p.page == 0 && p.meta == MetaPrevPage {
		p.meta++
	}
	if p.meta > MetaExitPage {
		p.meta = MetaNextPage
	}
	return true
}

// HandleDown moves the cursor down. From the band it returns to the first item of the page and returns true.
// Otherwise it increments selected, wrapping to the first item after the last item of the page, and returns false.
func (p *Paginator) HandleDown(selected *int) bool {
	if p.meta != MetaNone {
		*selected = 0
		p.meta = MetaNone
		return true
	}

	*selected++
	if *selected > p.ItemsOnPage()-1 {
		*selected = 0
	}
	return false
}

// HandleSelect acts on the band control under the cursor, updating page, and returns the control. Next page stops at
// the last page. Previous page moves the cursor to next page when it reaches the first page, where previous page is
// not shown. Exit leaves the band.
func (p *Paginator) HandleSelect(page *int) Meta {
	switch p.meta {
	case MetaNextPage:
		if *page < p.LastPage() {
			*page++
		}
	case MetaPrevPage:
		if *page > 0 {
			*page--
		}
		if *page == 0 {
			p.meta = MetaNextPage
		}
	case MetaExitPage:
		p.meta = MetaNone
		p.page = *page
		return MetaExitPage
	}
	p.page = *page
	return p.meta
}
