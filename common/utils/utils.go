package utils

import (
	"strconv"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ParsePagination reads page and page size query values. Missing or malformed values give page 1
// of DefaultPageSize; sizes above MaxPageSize are clamped.
func ParsePagination(pageStr, sizeStr string) (page, size int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	size, err = strconv.Atoi(sizeStr)
	switch {
	case err != nil || size < 1:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	return page, size
}
