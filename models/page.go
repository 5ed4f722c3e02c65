package models

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// PageRequest selects a window of the user listing. Page is 1-based.
type PageRequest struct {
	Page  int `validate:"gte=1"`
	Limit int `validate:"gte=1"`
}

// NewPageRequest returns a request with the listing defaults applied
func NewPageRequest() PageRequest {
	return PageRequest{Page: DefaultPage, Limit: DefaultLimit}
}

// Offset returns the number of rows skipped before this page.
// It is only meaningful for a request that passes Valid.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Valid reports whether the request is usable with the given maximum page size.
// A maxLimit of zero disables the upper bound.
func (p PageRequest) Valid(maxLimit int) bool {
	if p.Page < 1 || p.Limit < 1 {
		return false
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		return false
	}
	return !p.OffsetOverflows()
}

// OffsetOverflows reports whether (Page-1)*Limit does not fit in an int
func (p PageRequest) OffsetOverflows() bool {
	if p.Page < 1 || p.Limit < 1 {
		return false
	}
	return p.Page-1 > math.MaxInt/p.Limit
}
