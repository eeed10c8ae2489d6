package valueobjects

import (
	"errors"

	"github.com/google/uuid"

	pkgerrors "keepsake-backend/pkg/errors"
)

// MemoryID uniquely identifies a memory
type MemoryID struct {
	value string
}

// NewMemoryID generates a new memory ID
func NewMemoryID() MemoryID {
	return MemoryID{value: uuid.New().String()}
}

// NewMemoryIDFromString creates a MemoryID from an existing string
func NewMemoryIDFromString(s string) (MemoryID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return MemoryID{}, pkgerrors.NewValidationError("invalid memory ID format")
	}
	return MemoryID{value: s}, nil
}

// String returns the string representation
func (id MemoryID) String() string {
	return id.value
}

// Equals compares two memory IDs
func (id MemoryID) Equals(other MemoryID) bool {
	return id.value == other.value
}

// IsEmpty reports whether the ID is the zero value
func (id MemoryID) IsEmpty() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id MemoryID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *MemoryID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("MemoryID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}
