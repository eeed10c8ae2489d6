package events

import (
	"time"

	"keepsake-backend/domain/core/valueobjects"
)

// SourceBackend is the event source name used on the analytics bus
const SourceBackend = "keepsake.backend"

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields. Field names are stable: the
// analytics collaborator consumes them by name.
type BaseEvent struct {
	AggregateID  string    `json:"aggregate_id"`
	EventType    string    `json:"event_type"`
	Timestamp    time.Time `json:"timestamp"`
	Version      int       `json:"version"`
	UserID       string    `json:"user_id"`
	FamilyUnitID string    `json:"family_unit_id"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Memory events

// MemoryCreated is raised when a new memory is posted
type MemoryCreated struct {
	BaseEvent
	MemoryID valueobjects.MemoryID `json:"memory_id"`
	Status   string                `json:"status"`
	Tags     []string              `json:"tags"`
}

// NewMemoryCreated creates a MemoryCreated event
func NewMemoryCreated(memoryID valueobjects.MemoryID, userID, familyUnitID, status string, tags []string, timestamp time.Time) MemoryCreated {
	return MemoryCreated{
		BaseEvent: BaseEvent{
			AggregateID:  memoryID.String(),
			EventType:    "memory_created",
			Timestamp:    timestamp,
			Version:      1,
			UserID:       userID,
			FamilyUnitID: familyUnitID,
		},
		MemoryID: memoryID,
		Status:   status,
		Tags:     tags,
	}
}

// MemoryUpdated is raised when a memory's details change
type MemoryUpdated struct {
	BaseEvent
	MemoryID valueobjects.MemoryID `json:"memory_id"`
}

// NewMemoryUpdated creates a MemoryUpdated event
func NewMemoryUpdated(memoryID valueobjects.MemoryID, userID, familyUnitID string, timestamp time.Time) MemoryUpdated {
	return MemoryUpdated{
		BaseEvent: BaseEvent{
			AggregateID:  memoryID.String(),
			EventType:    "memory_updated",
			Timestamp:    timestamp,
			Version:      1,
			UserID:       userID,
			FamilyUnitID: familyUnitID,
		},
		MemoryID: memoryID,
	}
}

// MemoryPublished is raised when a draft memory becomes visible in the feed
type MemoryPublished struct {
	BaseEvent
	MemoryID valueobjects.MemoryID `json:"memory_id"`
}

// NewMemoryPublished creates a MemoryPublished event
func NewMemoryPublished(memoryID valueobjects.MemoryID, userID, familyUnitID string, timestamp time.Time) MemoryPublished {
	return MemoryPublished{
		BaseEvent: BaseEvent{
			AggregateID:  memoryID.String(),
			EventType:    "memory_published",
			Timestamp:    timestamp,
			Version:      1,
			UserID:       userID,
			FamilyUnitID: familyUnitID,
		},
		MemoryID: memoryID,
	}
}

// MemoryArchived is raised when a memory is archived
type MemoryArchived struct {
	BaseEvent
	MemoryID valueobjects.MemoryID `json:"memory_id"`
}

// NewMemoryArchived creates a MemoryArchived event
func NewMemoryArchived(memoryID valueobjects.MemoryID, userID, familyUnitID string, timestamp time.Time) MemoryArchived {
	return MemoryArchived{
		BaseEvent: BaseEvent{
			AggregateID:  memoryID.String(),
			EventType:    "memory_archived",
			Timestamp:    timestamp,
			Version:      1,
			UserID:       userID,
			FamilyUnitID: familyUnitID,
		},
		MemoryID: memoryID,
	}
}

// Reaction events

// ReactionCreated is raised when a user reacts to a memory
type ReactionCreated struct {
	BaseEvent
	ReactionID valueobjects.ReactionID `json:"reaction_id"`
	MemoryID   valueobjects.MemoryID   `json:"memory_id"`
	Emoji      string                  `json:"emoji"`
}

// NewReactionCreated creates a ReactionCreated event
func NewReactionCreated(reactionID valueobjects.ReactionID, memoryID valueobjects.MemoryID, userID, familyUnitID, emoji string, timestamp time.Time) ReactionCreated {
	return ReactionCreated{
		BaseEvent: BaseEvent{
			AggregateID:  reactionID.String(),
			EventType:    "reaction_created",
			Timestamp:    timestamp,
			Version:      1,
			UserID:       userID,
			FamilyUnitID: familyUnitID,
		},
		ReactionID: reactionID,
		MemoryID:   memoryID,
		Emoji:      emoji,
	}
}

// ReactionDeleted is raised when a user removes their reaction
type ReactionDeleted struct {
	BaseEvent
	ReactionID valueobjects.ReactionID `json:"reaction_id"`
	MemoryID   valueobjects.MemoryID   `json:"memory_id"`
	Emoji      string                  `json:"emoji"`
}

// NewReactionDeleted creates a ReactionDeleted event
func NewReactionDeleted(reactionID valueobjects.ReactionID, memoryID valueobjects.MemoryID, userID, familyUnitID, emoji string, timestamp time.Time) ReactionDeleted {
	return ReactionDeleted{
		BaseEvent: BaseEvent{
			AggregateID:  reactionID.String(),
			EventType:    "reaction_deleted",
			Timestamp:    timestamp,
			Version:      1,
			UserID:       userID,
			FamilyUnitID: familyUnitID,
		},
		ReactionID: reactionID,
		MemoryID:   memoryID,
		Emoji:      emoji,
	}
}

// Comment events

// CommentCreated is raised when a comment is posted
type CommentCreated struct {
	BaseEvent
	CommentID       valueobjects.CommentID `json:"comment_id"`
	MemoryID        valueobjects.MemoryID  `json:"memory_id"`
	ParentCommentID string                 `json:"parent_comment_id,omitempty"`
	Depth           int                    `json:"depth"`
}

// NewCommentCreated creates a CommentCreated event
func NewCommentCreated(commentID valueobjects.CommentID, memoryID valueobjects.MemoryID, userID, familyUnitID, parentCommentID string, depth int, timestamp time.Time) CommentCreated {
	return CommentCreated{
		BaseEvent: BaseEvent{
			AggregateID:  commentID.String(),
			EventType:    "comment_created",
			Timestamp:    timestamp,
			Version:      1,
			UserID:       userID,
			FamilyUnitID: familyUnitID,
		},
		CommentID:       commentID,
		MemoryID:        memoryID,
		ParentCommentID: parentCommentID,
		Depth:           depth,
	}
}

// CommentUpdated is raised when a comment is edited by its author
type CommentUpdated struct {
	BaseEvent
	CommentID valueobjects.CommentID `json:"comment_id"`
	MemoryID  valueobjects.MemoryID  `json:"memory_id"`
}

// NewCommentUpdated creates a CommentUpdated event
func NewCommentUpdated(commentID valueobjects.CommentID, memoryID valueobjects.MemoryID, userID, familyUnitID string, timestamp time.Time) CommentUpdated {
	return CommentUpdated{
		BaseEvent: BaseEvent{
			AggregateID:  commentID.String(),
			EventType:    "comment_updated",
			Timestamp:    timestamp,
			Version:      1,
			UserID:       userID,
			FamilyUnitID: familyUnitID,
		},
		CommentID: commentID,
		MemoryID:  memoryID,
	}
}

// CommentDeleted is raised when a comment is soft-deleted
type CommentDeleted struct {
	BaseEvent
	CommentID valueobjects.CommentID `json:"comment_id"`
	MemoryID  valueobjects.MemoryID  `json:"memory_id"`
}

// NewCommentDeleted creates a CommentDeleted event
func NewCommentDeleted(commentID valueobjects.CommentID, memoryID valueobjects.MemoryID, userID, familyUnitID string, timestamp time.Time) CommentDeleted {
	return CommentDeleted{
		BaseEvent: BaseEvent{
			AggregateID:  commentID.String(),
			EventType:    "comment_deleted",
			Timestamp:    timestamp,
			Version:      1,
			UserID:       userID,
			FamilyUnitID: familyUnitID,
		},
		CommentID: commentID,
		MemoryID:  memoryID,
	}
}
