package queries

import (
	pkgerrors "keepsake-backend/pkg/errors"
)

// ListReactionsQuery returns all reactions on a memory in creation order
type ListReactionsQuery struct {
	MemoryID     string
	UserID       string
	FamilyUnitID string
}

// Validate checks required fields
func (q ListReactionsQuery) Validate() error {
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

// ListReactionsResult is the reaction listing for one memory
type ListReactionsResult struct {
	MemoryID  string         `json:"memory_id"`
	Reactions []ReactionView `json:"reactions"`
	ByEmoji   map[string]int `json:"by_emoji"`
	Total     int            `json:"total"`
}
