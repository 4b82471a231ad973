package query

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// Pagination describes a window over an ordered result set. Offset and After are mutually exclusive;
// After is an id cursor used with Order.
type Pagination struct {
	Limit  *int
	Offset *int
	Order  string
	After  *uint
}

// NewPagePagination converts 1-based page/size into a limit/offset window.
func NewPagePagination(page, size int) *Pagination {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	offset := (page - 1) * size
	return &Pagination{
		Limit:  &size,
		Offset: &offset,
		Order:  "asc",
	}
}

// PageNumber returns the 1-based page the window starts on.
func (p *Pagination) PageNumber() int {
	size := p.PageSize()
	if p == nil || p.Offset == nil || size == 0 {
		return 1
	}
	return *p.Offset/size + 1
}

// PageSize returns the limit, or DefaultPageSize when unset.
func (p *Pagination) PageSize() int {
	if p == nil || p.Limit == nil {
		return DefaultPageSize
	}
	return *p.Limit
}

// PageCount returns how many pages of size hold total rows.
func PageCount(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
