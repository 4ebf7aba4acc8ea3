package models

import "math"

// Page is the pagination envelope shared by the list endpoints.
type Page[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewPage builds an envelope for rows fetched at (page, limit) out of total.
// A nil rows slice is rendered as an empty JSON array.
func NewPage[T any](rows []T, total int64, page, limit int) *Page[T] {
	if rows == nil {
		rows = []T{}
	}
	return &Page[T]{
		Data:       rows,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}
}

// TotalPages returns ceil(total/limit). A non-positive limit yields 0.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	l := int64(limit)
	return int((total + l - 1) / l)
}

// Offset returns the row offset of a 1-based page. Offsets past math.MaxInt
// saturate, so a huge page reads past the last row instead of wrapping.
func Offset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}
