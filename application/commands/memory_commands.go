// Package commands defines the write operations of the application layer.
// Each command carries everything its handler needs, including the
// caller-generated ID for new aggregates so responses can echo it back.
package commands

import (
	"time"

	pkgerrors "keepsake-backend/pkg/errors"
)

// CreateMemoryCommand creates a new memory in the caller's family unit
type CreateMemoryCommand struct {
	MemoryID     string    `json:"memory_id"`
	UserID       string    `json:"user_id"`
	FamilyUnitID string    `json:"family_unit_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	MemoryDate   time.Time `json:"memory_date"`
	Location     string    `json:"location"`
	Tags         []string  `json:"tags"`
	Status       string    `json:"status"`
}

// Validate checks required fields
func (cmd CreateMemoryCommand) Validate() error {
	if cmd.UserID == "" {
		return pkgerrors.NewValidationError("user ID is required")
	}
	if cmd.FamilyUnitID == "" {
		return pkgerrors.NewValidationError("family unit ID is required")
	}
	if cmd.Title == "" {
		return pkgerrors.NewValidationError("title is required")
	}
	if cmd.MemoryDate.IsZero() {
		return pkgerrors.NewValidationError("memory date is required")
	}
	return nil
}

// UpdateMemoryCommand replaces the mutable fields of an existing memory.
// Only the owner may update.
type UpdateMemoryCommand struct {
	MemoryID     string    `json:"memory_id"`
	UserID       string    `json:"user_id"`
	FamilyUnitID string    `json:"family_unit_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	MemoryDate   time.Time `json:"memory_date"`
	Location     string    `json:"location"`
	Tags         []string  `json:"tags"`
}

// Validate checks required fields
func (cmd UpdateMemoryCommand) Validate() error {
	if cmd.MemoryID == "" {
		return pkgerrors.NewValidationError("memory ID is required")
	}
	if cmd.UserID == "" {
		return pkgerrors.NewValidationError("user ID is required")
	}
	if cmd.FamilyUnitID == "" {
		return pkgerrors.NewValidationError("family unit ID is required")
	}
	if cmd.Title == "" {
		return pkgerrors.NewValidationError("title is required")
	}
	return nil
}

// ArchiveMemoryCommand removes a memory from the feed. The owner may
// archive their own memory; an adult may archive any memory in the family.
type ArchiveMemoryCommand struct {
	MemoryID     string `json:"memory_id"`
	UserID       string `json:"user_id"`
	FamilyUnitID string `json:"family_unit_id"`
	IsAdult      bool   `json:"is_adult"`
}

// Validate checks required fields
func (cmd ArchiveMemoryCommand) Validate() error {
	if cmd.MemoryID == "" {
		return pkgerrors.NewValidationError("memory ID is required")
	}
	if cmd.UserID == "" {
		return pkgerrors.NewValidationError("user ID is required")
	}
	if cmd.FamilyUnitID == "" {
		return pkgerrors.NewValidationError("family unit ID is required")
	}
	return nil
}
