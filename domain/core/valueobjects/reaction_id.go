package valueobjects

import (
	"errors"

	"github.com/google/uuid"

	pkgerrors "keepsake-backend/pkg/errors"
)

// ReactionID uniquely identifies a reaction
type ReactionID struct {
	value string
}

// NewReactionID generates a new reaction ID
func NewReactionID() ReactionID {
	return ReactionID{value: uuid.New().String()}
}

// NewReactionIDFromString creates a ReactionID from an existing string
func NewReactionIDFromString(s string) (ReactionID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return ReactionID{}, pkgerrors.NewValidationError("invalid reaction ID format")
	}
	return ReactionID{value: s}, nil
}

// String returns the string representation
func (id ReactionID) String() string {
	return id.value
}

// Equals compares two reaction IDs
func (id ReactionID) Equals(other ReactionID) bool {
	return id.value == other.value
}

// IsEmpty reports whether the ID is the zero value
func (id ReactionID) IsEmpty() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id ReactionID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *ReactionID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("ReactionID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}
