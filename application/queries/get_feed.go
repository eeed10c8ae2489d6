// Package queries defines the read operations of the application layer
// and their result models.
package queries

import (
	"time"

	"keepsake-backend/domain/feed"
	"keepsake-backend/pkg/common"
	pkgerrors "keepsake-backend/pkg/errors"
)

// GetFeedQuery returns the ranked memory feed for the caller's family
type GetFeedQuery struct {
	UserID       string
	FamilyUnitID string
	Filter       feed.Filter
	Page         int
	PageSize     int
}

// Validate checks required fields. Filter shape and pagination bounds are
// validated by the handler so defaults apply first.
func (q GetFeedQuery) Validate() error {
	if q.UserID == "" {
		return pkgerrors.NewValidationError("user ID is required")
	}
	if q.FamilyUnitID == "" {
		return pkgerrors.NewValidationError("family unit ID is required")
	}
	return nil
}

// ReactionView is a single reaction in API responses
type ReactionView struct {
	ID        string    `json:"id"`
	MemoryID  string    `json:"memory_id"`
	UserID    string    `json:"user_id"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentPreview is a trimmed comment used in feed items
type CommentPreview struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedItem is one ranked entry of the feed
type FeedItem struct {
	ID               string           `json:"id"`
	UserID           string           `json:"user_id"`
	FamilyUnitID     string           `json:"family_unit_id"`
	Title            string           `json:"title"`
	Description      string           `json:"description,omitempty"`
	MemoryDate       time.Time        `json:"memory_date"`
	Location         string           `json:"location,omitempty"`
	Tags             []string         `json:"tags,omitempty"`
	Status           string           `json:"status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	FeedScore        float64          `json:"feed_score"`
	ReactionCount    int              `json:"reaction_count"`
	CommentCount     int              `json:"comment_count"`
	UniqueReactors   int              `json:"unique_reactors"`
	ReactionsByEmoji map[string]int   `json:"reactions_by_emoji,omitempty"`
	TopComments      []CommentPreview `json:"top_comments,omitempty"`
	UserReactions    []ReactionView   `json:"user_reactions,omitempty"`
}

// FeedResult is a page of the feed with pagination metadata
type FeedResult struct {
	Items      []FeedItem             `json:"items"`
	Pagination *common.PaginationInfo `json:"pagination"`
	TotalCount int                    `json:"total_count"`
}
