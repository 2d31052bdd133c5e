package repository

import "fmt"

const defaultLimit = 10

var maxLimit = 100

// SetMaxPageSize overrides the page-size cap shared by every list query.
// Values below one keep the current cap.
func SetMaxPageSize(size int) {
	if size > 0 {
		maxLimit = size
	}
}

// PageSize applies the default page size and caps runaway requests. Handlers
// normalize through the same function before computing offsets, so the
// pagination envelope always matches the rows actually served.
func PageSize(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// orderClause resolves a caller-supplied sort field against a whitelist,
// falling back to newest-first.
func orderClause(allowed map[string]string, sortBy string, desc bool) string {
	column, ok := allowed[sortBy]
	if !ok {
		return "created_at DESC"
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}
