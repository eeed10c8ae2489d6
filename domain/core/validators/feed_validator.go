// Package validators holds request-shape validation that sits on the edge
// of the domain: rules that reject a query before any storage work happens.
package validators

import (
	"fmt"

	"keepsake-backend/domain/core/entities"
	"keepsake-backend/domain/feed"
	"keepsake-backend/pkg/common"
	pkgerrors "keepsake-backend/pkg/errors"
)

// FeedValidator checks feed query parameters and applies defaults
type FeedValidator struct{}

// NewFeedValidator creates a FeedValidator
func NewFeedValidator() *FeedValidator {
	return &FeedValidator{}
}

// ValidateFilter normalizes and validates a feed filter in place. Unset
// fields receive their defaults: published status, feed_score ordering,
// descending direction.
func (v *FeedValidator) ValidateFilter(f *feed.Filter) error {
	if f.Status == "" {
		f.Status = string(entities.MemoryStatusPublished)
	}
	if !entities.ValidMemoryStatus(f.Status) {
		return pkgerrors.NewInvalidFilterError("status", fmt.Sprintf("unknown status %q", f.Status))
	}

	if f.OrderBy == "" {
		f.OrderBy = feed.OrderByFeedScore
	}
	if !feed.ValidOrderBy(f.OrderBy) {
		return pkgerrors.NewInvalidFilterError("order_by", fmt.Sprintf("unknown sort field %q", f.OrderBy))
	}

	if f.Direction == "" {
		f.Direction = feed.DirectionDesc
	}
	if !feed.ValidDirection(f.Direction) {
		return pkgerrors.NewInvalidFilterError("direction", fmt.Sprintf("unknown sort direction %q", f.Direction))
	}

	if f.MemoryDateFrom != nil && f.MemoryDateTo != nil && f.MemoryDateFrom.After(*f.MemoryDateTo) {
		return pkgerrors.NewInvalidFilterError("memory_date", "from date is after to date")
	}

	return nil
}

// ValidatePagination checks page and page_size bounds
func (v *FeedValidator) ValidatePagination(page, pageSize int) error {
	if page < 1 {
		return pkgerrors.NewInvalidFilterError("page", "page must be at least 1")
	}
	if pageSize < 1 || pageSize > common.MaxPageSize {
		return pkgerrors.NewInvalidFilterError("page_size", fmt.Sprintf("page_size must be between 1 and %d", common.MaxPageSize))
	}
	return nil
}
