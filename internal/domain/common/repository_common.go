package common

import "time"

// TimeRange is a shared period filter.
type TimeRange struct {
	From *time.Time
	To   *time.Time
}

// Sort is the shared sort spec for listings.
// Column is validated against an allow-list by each repository.
type Sort struct {
	Column string
	Order  SortOrder
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Page is offset paging (1-based).
type Page struct {
	Number  int
	PerPage int // <= 0 means the implementation default
}

// PageResult is a paged listing result.
type PageResult[T any] struct {
	Items      []T
	TotalCount int
	TotalPages int
	Page       int
	PerPage    int
}
