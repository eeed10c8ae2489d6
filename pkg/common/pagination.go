package common

import (
	"net/http"
	"strconv"
)

// Pagination bounds shared by every paginated endpoint.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// DefaultPaginationParams returns default pagination parameters
func DefaultPaginationParams() PaginationParams {
	return PaginationParams{
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// ExtractPaginationParams extracts pagination parameters from request.
// Values are parsed leniently; range validation is the caller's concern so
// that out-of-range values surface as InvalidFilter rather than being
// silently clamped.
func ExtractPaginationParams(r *http.Request) (PaginationParams, error) {
	params := DefaultPaginationParams()

	if page := r.URL.Query().Get("page"); page != "" {
		p, err := strconv.Atoi(page)
		if err != nil {
			return params, err
		}
		params.Page = p
	}

	if pageSize := r.URL.Query().Get("page_size"); pageSize != "" {
		ps, err := strconv.Atoi(pageSize)
		if err != nil {
			return params, err
		}
		params.PageSize = ps
	}

	return params, nil
}

// CalculateOffset calculates the offset for slicing a result set
func (p PaginationParams) CalculateOffset() int {
	return (p.Page - 1) * p.PageSize
}

// CalculateTotalPages calculates total number of pages
func CalculateTotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}

// PaginationInfo contains pagination details
type PaginationInfo struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
	HasPrev    bool `json:"has_prev"`
}

// BuildPaginationMeta builds pagination metadata
func BuildPaginationMeta(page, pageSize, total int) *PaginationInfo {
	totalPages := CalculateTotalPages(total, pageSize)

	return &PaginationInfo{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
		HasPrev:    page > 1,
	}
}
