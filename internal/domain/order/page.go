package order

// Limits holds pagination bounds applied when normalizing queries
type Limits struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultLimits returns the standard pagination bounds
func DefaultLimits() Limits {
	return Limits{DefaultLimit: 10, MaxLimit: 100}
}

// Query carries the caller's search and pagination request.
// Zero or negative values are treated as "unspecified".
type Query struct {
	Search string
	Page   int
	Limit  int
}

// Normalize applies defaults and clamping: page defaults to 1, limit
// defaults to l.DefaultLimit and is clamped to l.MaxLimit. Invalid
// pagination input is never an error.
func (q Query) Normalize(l Limits) Query {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = l.DefaultLimit
	}
	if q.Limit > l.MaxLimit {
		q.Limit = l.MaxLimit
	}
	return q
}

// PageRef points at an adjacent page in a paginated result
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Page is a paginated slice of orders with navigation metadata
type Page struct {
	Data        []Order  `json:"data"`
	Total       int      `json:"total"`
	CurrentPage int      `json:"currentPage"`
	TotalPages  int      `json:"totalPages"`
	Next        *PageRef `json:"next,omitempty"`
	Previous    *PageRef `json:"previous,omitempty"`
}

// Paginate slices an ordered sequence into a Page. Callers must pass a
// normalized page and limit (both >= 1). Out-of-range pages yield an
// empty data slice with valid metadata, never an error.
func Paginate(orders []Order, page, limit int) *Page {
	total := len(orders)

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	p := &Page{
		Data:        orders[start:end],
		Total:       total,
		CurrentPage: page,
		TotalPages:  TotalPages(total, limit),
	}
	if p.Data == nil {
		p.Data = []Order{}
	}
	if page*limit < total {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Previous = &PageRef{Page: page - 1, Limit: limit}
	}
	return p
}

// NewPage builds page metadata around an already-sliced data set, used
// by sources that paginate in the query layer
func NewPage(data []Order, total, page, limit int) *Page {
	if data == nil {
		data = []Order{}
	}
	p := &Page{
		Data:        data,
		Total:       total,
		CurrentPage: page,
		TotalPages:  TotalPages(total, limit),
	}
	if page*limit < total {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Previous = &PageRef{Page: page - 1, Limit: limit}
	}
	return p
}

// TotalPages computes ceil(total/limit), never less than 1 so an empty
// result still reports a single (empty) page
func TotalPages(total, limit int) int {
	pages := total / limit
	if total%limit > 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return pages
}
