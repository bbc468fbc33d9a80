package util

import "strconv"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage keeps (page-1)*size well inside int range.
	MaxPage = 1 << 20
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

func Calculate(page, size int) (offset int, limit int) {
	page = max(1, min(page, MaxPage))
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return (page - 1) * size, size
}

// Window returns the [offset, offset+limit) bounds clipped to n.
func Window(n, offset, limit int) (from, to int) {
	from = max(0, min(offset, n))
	to = max(from, min(from+max(limit, 0), n))
	return from, to
}
