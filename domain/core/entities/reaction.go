package entities

import (
	"time"

	"keepsake-backend/domain/core/valueobjects"
	"keepsake-backend/domain/events"
	pkgerrors "keepsake-backend/pkg/errors"
)

// Reaction is a single emoji response from a user to a memory. A user may
// react to the same memory with several distinct emojis, but never twice
// with the same one. The storage layer enforces that pair uniqueness.
type Reaction struct {
	id           valueobjects.ReactionID
	memoryID     valueobjects.MemoryID
	userID       string
	familyUnitID string
	emoji        valueobjects.Emoji
	createdAt    time.Time

	uncommittedEvents []events.DomainEvent
}

// NewReaction creates a reaction after validating the emoji
func NewReaction(id valueobjects.ReactionID, memoryID valueobjects.MemoryID, userID, familyUnitID, rawEmoji string) (*Reaction, error) {
	emoji, err := valueobjects.NewEmoji(rawEmoji)
	if err != nil {
		return nil, err
	}
	if id.IsEmpty() {
		id = valueobjects.NewReactionID()
	}

	now := time.Now().UTC()
	r := &Reaction{
		id:           id,
		memoryID:     memoryID,
		userID:       userID,
		familyUnitID: familyUnitID,
		emoji:        emoji,
		createdAt:    now,
	}
	r.addEvent(events.NewReactionCreated(r.id, memoryID, userID, familyUnitID, emoji.String(), now))
	return r, nil
}

// ReconstructReaction rebuilds a reaction from stored state without
// validation or events.
func ReconstructReaction(id valueobjects.ReactionID, memoryID valueobjects.MemoryID, userID, familyUnitID string, emoji valueobjects.Emoji, createdAt time.Time) *Reaction {
	return &Reaction{
		id:           id,
		memoryID:     memoryID,
		userID:       userID,
		familyUnitID: familyUnitID,
		emoji:        emoji,
		createdAt:    createdAt,
	}
}

func (r *Reaction) ID() valueobjects.ReactionID    { return r.id }
func (r *Reaction) MemoryID() valueobjects.MemoryID { return r.memoryID }
func (r *Reaction) UserID() string                 { return r.userID }
func (r *Reaction) FamilyUnitID() string           { return r.familyUnitID }
func (r *Reaction) Emoji() valueobjects.Emoji      { return r.emoji }
func (r *Reaction) CreatedAt() time.Time           { return r.createdAt }

// IsOwnedBy reports whether userID created this reaction
func (r *Reaction) IsOwnedBy(userID string) bool {
	return r.userID == userID
}

// Remove authorizes removal: only the reacting user may remove their own
// reaction. It raises the deletion event for the analytics stream.
func (r *Reaction) Remove(userID string) error {
	if !r.IsOwnedBy(userID) {
		return pkgerrors.NewForbiddenError("only the reacting user can remove a reaction")
	}
	r.addEvent(events.NewReactionDeleted(r.id, r.memoryID, userID, r.familyUnitID, r.emoji.String(), time.Now().UTC()))
	return nil
}

// GetUncommittedEvents returns events raised since the last clear
func (r *Reaction) GetUncommittedEvents() []events.DomainEvent {
	return r.uncommittedEvents
}

// ClearEvents discards the uncommitted event list
func (r *Reaction) ClearEvents() {
	r.uncommittedEvents = nil
}

func (r *Reaction) addEvent(e events.DomainEvent) {
	r.uncommittedEvents = append(r.uncommittedEvents, e)
}
