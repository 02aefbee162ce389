package models

// Page is a bounded slice of an ordered result set plus the metadata the
// admin listing renders: totals and first/last flags. Page numbers are
// zero-based.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"page"`
	Size          int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"isFirst"`
	Last          bool  `json:"isLast"`
}

func NewPage[T any](content []T, page, size int, total int64) *Page[T] {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}

	return &Page[T]{
		Content:       content,
		Number:        page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          totalPages == 0 || page >= totalPages-1,
	}
}
