package model

// Date layouts used across forms and the appointments date column. The
// appointment date is persisted as an ISO-8601 string on purpose: list
// ordering and day filters rely on lexical order matching chronological
// order.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pagination represents common pagination parameters
type Pagination struct {
	Page int `form:"page"`
	Size int `form:"size"`
}

// Normalize clamps page/size into their valid ranges.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Size
}

// PageMeta carries the navigation metadata rendered alongside lists.
type PageMeta struct {
	Page       int
	Size       int
	TotalCount int
	TotalPages int
	HasNext    bool
	HasPrev    bool
	// NextPage and PrevPage are precomputed for the pagination links.
	NextPage int
	PrevPage int
}

// NewPageMeta computes page metadata for a total row count:
// TotalPages = ceil(total/size).
func NewPageMeta(p Pagination, total int) PageMeta {
	p = p.Normalize()
	totalPages := (total + p.Size - 1) / p.Size
	return PageMeta{
		Page:       p.Page,
		Size:       p.Size,
		TotalCount: total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
		NextPage:   p.Page + 1,
		PrevPage:   p.Page - 1,
	}
}
