package utils

import (
	"math"
	"strconv"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps (page-1)*pageSize inside int.
	MaxPage = math.MaxInt / MaxPageSize
)

// Page is an offset window over a listing.
type Page struct {
	Page     int
	PageSize int
}

// ParsePage reads raw query values. Missing or invalid values fall back to
// the defaults and pageSize is capped at MaxPageSize.
func ParsePage(rawPage, rawSize string) Page {
	p := Page{Page: DefaultPage, PageSize: DefaultPageSize}
	if n, err := strconv.Atoi(rawPage); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(rawSize); err == nil && n > 0 {
		p.PageSize = n
	}
	return p.Normalize()
}

func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p Page) Offset() int { return (p.Page - 1) * p.PageSize }

// TotalPages is ceil(total / pageSize).
func (p Page) TotalPages(total int64) int {
	if p.PageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
}
