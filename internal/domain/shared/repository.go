package shared

// Pagination describes the position of a page within the
// filtered-but-unpaginated result set of a report query.
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// NewPagination creates pagination metadata for a report page
func NewPagination(page, pageSize int, total int64) Pagination {
	return Pagination{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}
}

// Offset returns the row offset of the page: pageSize * (page - 1)
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return p.PageSize * (p.Page - 1)
}

// TotalPages returns the number of pages in the full result set
func (p Pagination) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	pages := int(p.Total) / p.PageSize
	if int(p.Total)%p.PageSize > 0 {
		pages++
	}
	return pages
}
