package valueobjects

import (
	"errors"

	"github.com/google/uuid"

	pkgerrors "keepsake-backend/pkg/errors"
)

// CommentID uniquely identifies a comment
type CommentID struct {
	value string
}

// NewCommentID generates a new comment ID
func NewCommentID() CommentID {
	return CommentID{value: uuid.New().String()}
}

// NewCommentIDFromString creates a CommentID from an existing string
func NewCommentIDFromString(s string) (CommentID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return CommentID{}, pkgerrors.NewValidationError("invalid comment ID format")
	}
	return CommentID{value: s}, nil
}

// String returns the string representation
func (id CommentID) String() string {
	return id.value
}

// Equals compares two comment IDs
func (id CommentID) Equals(other CommentID) bool {
	return id.value == other.value
}

// IsEmpty reports whether the ID is the zero value
func (id CommentID) IsEmpty() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id CommentID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *CommentID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("CommentID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}
