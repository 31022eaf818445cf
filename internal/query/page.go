// Package query builds filter predicates and page windows for list and search
// operations.
package query

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 500

	// MaxPage keeps (page-1)*limit within int for any allowed limit.
	MaxPage = math.MaxInt / MaxLimit
)

// Page is a normalized page window.
type Page struct {
	Number int
	Limit  int
}

// NewPage normalizes caller input: page < 1 becomes 1, limit < 1 becomes
// DefaultLimit and limit is capped at MaxLimit. Page numbers above MaxPage are
// clamped; such pages lie past any real result set.
func NewPage(number, limit int) Page {
	if number < 1 {
		number = DefaultPage
	}
	if number > MaxPage {
		number = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: number, Limit: limit}
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// TotalPages returns ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	l := int64(limit)
	return int((total + l - 1) / l)
}

// Result is one page of items plus counts over the full filtered set.
type Result[T any] struct {
	Items      []T
	Total      int64
	TotalPages int
	Page       int
	Limit      int
}

// NewResult assembles a Result for page p.
func NewResult[T any](items []T, total int64, p Page) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{
		Items:      items,
		Total:      total,
		TotalPages: TotalPages(total, p.Limit),
		Page:       p.Number,
		Limit:      p.Limit,
	}
}
