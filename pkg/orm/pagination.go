package orm

// Pagination is the offset-pagination metadata attached to list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// GetWithPagination counts the matching rows, then loads one page into dest.
// page is 1-indexed; perPage defaults to 10 and is capped at 100.
func (q *Query) GetWithPagination(dest interface{}, page, perPage int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	total, err := q.Count()
	if err != nil {
		return Pagination{}, err
	}

	if err := q.Offset((page - 1) * perPage).Limit(perPage).Get(dest); err != nil {
		return Pagination{}, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}, nil
}
