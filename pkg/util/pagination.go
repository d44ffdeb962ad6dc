package util

import "strconv"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Calculate normalises a 1-indexed page and a page size into an offset and limit.
func Calculate(page, size int) (page1 int, offset int, limit int) {
	if page < 1 {
		page = 1
	}
	switch {
	case size <= 0:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	return page, (page - 1) * size, size
}

// HasMore reports whether items remain after the current page.
func HasMore(offset, returned int, total int64) bool {
	return int64(offset+returned) < total
}
