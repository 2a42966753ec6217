package domain

// PaginationParams holds page-based pagination for list queries. Page is
// 1-based.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset converts the page number into the 0-based row offset used in SQL
// LIMIT/OFFSET queries.
func (p PaginationParams) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Limit returns the row limit for the query.
func (p PaginationParams) Limit() int {
	return p.PageSize
}
