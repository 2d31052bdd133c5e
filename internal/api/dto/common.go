package dto

import "math"

// Pagination is the uniform paging block returned by every list endpoint.
// Key names follow the public API contract.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// NewPagination derives the paging block from the requested page/limit and
// the total row count. A page past the end simply yields an empty item list.
func NewPagination(page, limit int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   int(math.Ceil(float64(total) / float64(limit))),
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}
