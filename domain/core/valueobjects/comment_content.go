package valueobjects

import (
	"strings"

	pkgerrors "keepsake-backend/pkg/errors"
)

// MaxCommentContentLength bounds comment content after trimming.
const MaxCommentContentLength = 5000

// CommentContent is validated comment text: non-empty after trimming
// surrounding whitespace and at most MaxCommentContentLength characters.
type CommentContent struct {
	value string
}

// NewCommentContent trims and validates comment text
func NewCommentContent(s string) (CommentContent, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return CommentContent{}, pkgerrors.NewInvalidContentError("comment content cannot be empty")
	}
	if len([]rune(trimmed)) > MaxCommentContentLength {
		return CommentContent{}, pkgerrors.NewInvalidContentError("comment content cannot exceed 5000 characters")
	}
	return CommentContent{value: trimmed}, nil
}

// String returns the trimmed content
func (c CommentContent) String() string {
	return c.value
}

// Equals compares two contents
func (c CommentContent) Equals(other CommentContent) bool {
	return c.value == other.value
}

// IsEmpty reports whether the content is the zero value
func (c CommentContent) IsEmpty() bool {
	return c.value == ""
}
