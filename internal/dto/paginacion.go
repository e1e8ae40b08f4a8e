package dto

import "math"

// Defaults and bounds shared by every paginated endpoint.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Paginacion is the pagination envelope attached to every list response.
type Paginacion struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewPaginacion computes totalPages = ceil(total/limit) for an already
// clamped page/limit pair.
func NewPaginacion(total int64, page, limit int) Paginacion {
	return Paginacion{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

// ClampPage normalizes a requested page/limit pair. Values below 1 are clamped
// to the defaults rather than rejected, and limit is capped at MaxLimit so a
// single request cannot drag the whole offer table into memory.
func ClampPage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Offset returns the store offset for a clamped page/limit pair.
func Offset(page, limit int) int { return (page - 1) * limit }
