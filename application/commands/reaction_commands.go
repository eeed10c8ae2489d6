package commands

import (
	pkgerrors "keepsake-backend/pkg/errors"
)

// CreateReactionCommand adds an emoji reaction to a memory. The storage
// layer rejects a second reaction with the same emoji from the same user.
type CreateReactionCommand struct {
	ReactionID   string `json:"reaction_id"`
	MemoryID     string `json:"memory_id"`
	UserID       string `json:"user_id"`
	FamilyUnitID string `json:"family_unit_id"`
	Emoji        string `json:"emoji"`
}

// Validate checks required fields
func (cmd CreateReactionCommand) Validate() error {
	if cmd.MemoryID == "" {
		return pkgerrors.NewValidationError("memory ID is required")
	}
	if cmd.UserID == "" {
		return pkgerrors.NewValidationError("user ID is required")
	}
	if cmd.FamilyUnitID == "" {
		return pkgerrors.NewValidationError("family unit ID is required")
	}
	if cmd.Emoji == "" {
		return pkgerrors.NewValidationError("emoji is required")
	}
	return nil
}

// DeleteReactionCommand removes a reaction. Only the reacting user may
// remove it.
type DeleteReactionCommand struct {
	ReactionID   string `json:"reaction_id"`
	UserID       string `json:"user_id"`
	FamilyUnitID string `json:"family_unit_id"`
}

// Validate checks required fields
func (cmd DeleteReactionCommand) Validate() error {
	if cmd.ReactionID == "" {
		return pkgerrors.NewValidationError("reaction ID is required")
	}
	if cmd.UserID == "" {
		return pkgerrors.NewValidationError("user ID is required")
	}
	if cmd.FamilyUnitID == "" {
		return pkgerrors.NewValidationError("family unit ID is required")
	}
	return nil
}
