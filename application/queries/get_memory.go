package queries

import (
	pkgerrors "keepsake-backend/pkg/errors"
)

// GetMemoryQuery returns a single memory with its engagement counters
type GetMemoryQuery struct {
	MemoryID     string
	UserID       string
	FamilyUnitID string
}

// Validate checks required fields
func (q GetMemoryQuery) Validate() error {
	if q.MemoryID == "" {
		return pkgerrors.NewValidationError("memory ID is required")
	}
	if q.UserID == "" {
		return pkgerrors.NewValidationError("user ID is required")
	}
	if q.FamilyUnitID == "" {
		return pkgerrors.NewValidationError("family unit ID is required")
	}
	return nil
}
