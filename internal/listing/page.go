// Package listing sorts and paginates projected views of groups and posts.
//
// Filtering happens at the store. This package owns ordering, which is total
// so that pages stay stable across requests, and the page arithmetic.
package listing

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// Normalize clamps a raw page request. A number or size at or below zero
// falls back to page 1 and defaultSize; size is capped at maxSize. The
// number is capped so that Offset never overflows.
func Normalize(number, size, defaultSize, maxSize int) Page {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if maxSize < defaultSize {
		maxSize = defaultSize
	}
	if number <= 0 {
		number = 1
	}
	if size <= 0 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}
	if number > math.MaxInt/size {
		number = math.MaxInt / size
	}
	return Page{Number: number, Size: size}
}

// Offset returns the number of items skipped before this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// TotalPages returns ceil(total / size).
func (p Page) TotalPages(total int) int {
	if total <= 0 || p.Size <= 0 {
		return 0
	}
	return (total + p.Size - 1) / p.Size
}

// Result is one page of a listing.
type Result[T any] struct {
	CurrentPage    int `json:"currentPage"`
	TotalPages     int `json:"totalPages"`
	TotalItemCount int `json:"totalItemCount"`
	Data           []T `json:"data"`
}

// Paginate cuts the page out of items, which must already be sorted.
// A page past the end yields empty Data with the real TotalPages.
func Paginate[T any](items []T, page Page) Result[T] {
	total := len(items)
	data := []T{}

	if page.Number >= 1 && page.Number-1 < page.TotalPages(total) {
		start := page.Offset()
		end := min(start+page.Size, total)
		data = items[start:end]
	}

	return Result[T]{
		CurrentPage:    page.Number,
		TotalPages:     page.TotalPages(total),
		TotalItemCount: total,
		Data:           data,
	}
}
