package types

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListFilter is the common filter for admin listing and export endpoints.
// Status is an exact match on the entity's status field; Search is a
// case-insensitive substring match over the entity's searchable fields.
type ListFilter struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// Normalize clamps pagination parameters: page below 1 becomes 1, page size
// defaults to DefaultPageSize and caps at MaxPageSize.
func (f ListFilter) Normalize() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	return f
}

// Unpaginated strips pagination so the filter selects every match. Used by
// CSV exports, which share status/search semantics with listing.
func (f ListFilter) Unpaginated() ListFilter {
	f.Page = 0
	f.PageSize = 0
	return f
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func NewPagination(filter ListFilter, total int) Pagination {
	return Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
	}
}
