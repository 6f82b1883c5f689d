// Package query implements the list-query contract shared by all list
// endpoints: a registry of recognized filter options (unrecognized keys are
// dropped at parse time and never reach the store layer) and fixed-size
// page-number pagination with a stable total ordering.
package query

// PageSize is the fixed number of items per page.
const PageSize = 20

// Page is the envelope returned by every list operation. Next and Previous
// are 1-indexed page numbers, nil when there is no such page.
type Page[T any] struct {
	Count    int64 `json:"count"`
	Next     *int  `json:"next"`
	Previous *int  `json:"previous"`
	Results  []T   `json:"results"`
}

// NewPage assembles the envelope for the given total count, requested page
// number, and page contents. A page past the end yields empty results and a
// nil Next; results must never be nil so the JSON array is always present.
func NewPage[T any](count int64, page int, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}
	p := Page[T]{Count: count, Results: results}
	if int64(page)*PageSize < count {
		next := page + 1
		p.Next = &next
	}
	if page > 1 {
		prev := page - 1
		p.Previous = &prev
	}
	return p
}

// Offset converts a 1-indexed page number into a row offset.
func Offset(page int) int {
	return (page - 1) * PageSize
}
