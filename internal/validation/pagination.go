// Package validation checks request input before any storage access and
// reports every failing field at once.
package validation

import (
	"strconv"
	"strings"

	"lema/internal/models"
)

// Pagination defaults applied when page/limit are absent.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

const (
	msgNotInteger  = "Expected a whole number"
	msgNotPositive = "Must be a positive integer"
)

// Pagination is a validated, 1-based page request.
type Pagination struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip for this page.
func (p Pagination) Offset() int {
	return models.Offset(p.Page, p.Limit)
}

// ParsePagination validates raw page/limit query values. Empty values fall back
// to the defaults; limit is clamped to maxLimit when maxLimit is positive.
func ParsePagination(rawPage, rawLimit string, maxLimit int) (Pagination, models.FieldErrors) {
	errs := models.FieldErrors{}

	page, ok := parsePositive(rawPage, DefaultPage, "page", errs)
	if !ok {
		page = DefaultPage
	}
	limit, ok := parsePositive(rawLimit, DefaultLimit, "limit", errs)
	if !ok {
		limit = DefaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	return Pagination{Page: page, Limit: limit}, errs
}

func parsePositive(raw string, def int, field string, errs models.FieldErrors) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs.Add(field, msgNotInteger)
		return 0, false
	}
	if n < 1 {
		errs.Add(field, msgNotPositive)
		return 0, false
	}
	return n, true
}
