package commands

import (
	pkgerrors "keepsake-backend/pkg/errors"
)

// CreateCommentCommand posts a comment on a memory, optionally as a reply
// to an existing comment.
type CreateCommentCommand struct {
	CommentID       string `json:"comment_id"`
	MemoryID        string `json:"memory_id"`
	UserID          string `json:"user_id"`
	FamilyUnitID    string `json:"family_unit_id"`
	Content         string `json:"content"`
	ParentCommentID string `json:"parent_comment_id"`
}

// Validate checks required fields. Content length rules live in the
// domain layer where trimming happens.
func (cmd CreateCommentCommand) Validate() error {
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

// UpdateCommentCommand edits a comment's text. Only the author may edit.
type UpdateCommentCommand struct {
	CommentID    string `json:"comment_id"`
	UserID       string `json:"user_id"`
	FamilyUnitID string `json:"family_unit_id"`
	Content      string `json:"content"`
}

// Validate checks required fields
func (cmd UpdateCommentCommand) Validate() error {
	if cmd.CommentID == "" {
		return pkgerrors.NewValidationError("comment ID is required")
	}
	if cmd.UserID == "" {
		return pkgerrors.NewValidationError("user ID is required")
	}
	if cmd.FamilyUnitID == "" {
		return pkgerrors.NewValidationError("family unit ID is required")
	}
	return nil
}

// DeleteCommentCommand tombstones a comment. The author may delete their
// own comment; an adult in the family may delete any comment.
type DeleteCommentCommand struct {
	CommentID    string `json:"comment_id"`
	UserID       string `json:"user_id"`
	FamilyUnitID string `json:"family_unit_id"`
	IsAdult      bool   `json:"is_adult"`
}

// Validate checks required fields
func (cmd DeleteCommentCommand) Validate() error {
	if cmd.CommentID == "" {
		return pkgerrors.NewValidationError("comment ID is required")
	}
	if cmd.UserID == "" {
		return pkgerrors.NewValidationError("user ID is required")
	}
	if cmd.FamilyUnitID == "" {
		return pkgerrors.NewValidationError("family unit ID is required")
	}
	return nil
}
