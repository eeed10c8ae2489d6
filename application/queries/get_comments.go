package queries

import (
	"time"

	pkgerrors "keepsake-backend/pkg/errors"
)

// GetCommentsQuery returns a memory's comment threads. Limit bounds
// top-level comments only. When IncludeReplies is false the result keeps
// reply counts but returns top-level comments with empty reply lists.
type GetCommentsQuery struct {
	MemoryID       string
	UserID         string
	FamilyUnitID   string
	IncludeReplies bool
	Limit          int
}

// Validate checks required fields and bounds
func (q GetCommentsQuery) Validate() error {
	if q.MemoryID == "" {
		return pkgerrors.NewValidationError("memory ID is required")
	}
	if q.UserID == "" {
		return pkgerrors.NewValidationError("user ID is required")
	}
	if q.FamilyUnitID == "" {
		return pkgerrors.NewValidationError("family unit ID is required")
	}
	if q.Limit < 0 {
		return pkgerrors.NewInvalidFilterError("limit", "limit cannot be negative")
	}
	return nil
}

// CommentView is one comment node in API responses. Deleted comments
// appear tombstoned: is_deleted true with empty content.
type CommentView struct {
	ID              string        `json:"id"`
	MemoryID        string        `json:"memory_id"`
	UserID          string        `json:"user_id"`
	ParentCommentID string        `json:"parent_comment_id,omitempty"`
	Depth           int           `json:"depth"`
	Content         string        `json:"content"`
	IsDeleted       bool          `json:"is_deleted"`
	ReplyCount      int           `json:"reply_count"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	Replies         []CommentView `json:"replies,omitempty"`
}

// GetCommentsResult is the comment listing for one memory
type GetCommentsResult struct {
	MemoryID string        `json:"memory_id"`
	Comments []CommentView `json:"comments"`
	Total    int           `json:"total"`
}
