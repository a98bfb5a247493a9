// Package listing provides the pure list-view helpers shared by every entity
// collection: free-text filtering and fixed-size pagination. Both functions
// are deterministic and never mutate their input.
package listing

import "strings"

// Status filter values accepted by Filter.
const (
	StatusAll      = "all"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Filter returns the items whose text fields contain term (case-insensitive,
// OR across fields) and whose active flag matches the status filter. An empty
// term matches everything; StatusAll passes both flags. Order is preserved.
func Filter[T any](items []T, term, status string, fields func(T) []string, active func(T) bool) []T {
	needle := strings.ToLower(strings.TrimSpace(term))

	out := make([]T, 0, len(items))
	for _, item := range items {
		switch status {
		case StatusActive:
			if !active(item) {
				continue
			}
		case StatusInactive:
			if active(item) {
				continue
			}
		}

		if needle != "" && !matchesAny(fields(item), needle) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesAny(fields []string, needle string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Page is one page of a paginated collection.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Paginate slices items into 1-indexed pages of pageSize. Pages outside
// [1, TotalPages] yield an empty Items slice; callers clamp, not this
// function. pageSize < 1 is treated as an empty page set.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize < 1 {
		return Page[T]{Items: []T{}, TotalItems: len(items)}
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if page < 1 || start >= total {
		return Page[T]{Items: []T{}, TotalItems: total, TotalPages: totalPages}
	}

	end := start + pageSize
	if end > total {
		end = total
	}
	return Page[T]{Items: items[start:end], TotalItems: total, TotalPages: totalPages}
}
