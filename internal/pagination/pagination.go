// Package pagination implements 1-based offset paging shared by repositories
// and in-memory collection queries.
package pagination

import "fmt"

// Page is one page of results plus paging metadata.
type Page[T any] struct {
	Items           []T  `json:"items"`
	TotalCount      int  `json:"total_count"`
	PageNumber      int  `json:"page_number"`
	PageSize        int  `json:"page_size"`
	PageCount       int  `json:"page_count"`
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
}

// New wraps an already-sliced item set with paging metadata. pageNumber and
// pageSize must both be at least 1.
func New[T any](items []T, total, pageNumber, pageSize int) (*Page[T], error) {
	if pageNumber < 1 {
		return nil, fmt.Errorf("page number must be at least 1, got %d", pageNumber)
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("page size must be at least 1, got %d", pageSize)
	}
	pageCount := (total + pageSize - 1) / pageSize
	return &Page[T]{
		Items:           items,
		TotalCount:      total,
		PageNumber:      pageNumber,
		PageSize:        pageSize,
		PageCount:       pageCount,
		HasNextPage:     pageNumber < pageCount,
		HasPreviousPage: pageNumber > 1,
	}, nil
}

// ToPagedData takes the requested page out of an in-memory collection.
func ToPagedData[T any](items []T, pageNumber, pageSize int) (*Page[T], error) {
	if pageNumber < 1 {
		return nil, fmt.Errorf("page number must be at least 1, got %d", pageNumber)
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("page size must be at least 1, got %d", pageSize)
	}
	total := len(items)
	start := (pageNumber - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return New(items[start:end], total, pageNumber, pageSize)
}

// Offset converts a 1-based page number into a SQL offset.
func Offset(pageNumber, pageSize int) int {
	return (pageNumber - 1) * pageSize
}
