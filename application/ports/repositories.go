// Package ports defines the interfaces the application layer depends on.
// Infrastructure provides the implementations; handlers only ever see
// these contracts.
package ports

import (
	"context"
	"time"

	"keepsake-backend/domain/core/entities"
	"keepsake-backend/domain/core/valueobjects"
	"keepsake-backend/domain/events"
	"keepsake-backend/domain/feed"
)

// MemoryRepository persists memories scoped to a family unit
type MemoryRepository interface {
	// Save stores a new memory
	Save(ctx context.Context, memory *entities.Memory) error

	// FindByID looks up a memory by its ID. Returns a NotFound error when
	// the memory does not exist.
	FindByID(ctx context.Context, id valueobjects.MemoryID) (*entities.Memory, error)

	// FindByFamily returns the family's memories matching the filter,
	// unsorted. Ranking happens in the application layer.
	FindByFamily(ctx context.Context, familyUnitID string, filter feed.Filter) ([]*entities.Memory, error)

	// Update overwrites an existing memory
	Update(ctx context.Context, memory *entities.Memory) error
}

// CommentRepository persists threaded comments
type CommentRepository interface {
	// Save stores a new comment
	Save(ctx context.Context, comment *entities.Comment) error

	// FindByID looks up a comment by its ID. Returns a NotFound error when
	// the comment does not exist.
	FindByID(ctx context.Context, id valueobjects.CommentID) (*entities.Comment, error)

	// FindByMemory returns all comments on a memory, deleted ones
	// included, ordered by creation time ascending.
	FindByMemory(ctx context.Context, memoryID valueobjects.MemoryID) ([]*entities.Comment, error)

	// Update overwrites an existing comment
	Update(ctx context.Context, comment *entities.Comment) error

	// CountActiveByMemory counts non-deleted comments on a memory
	CountActiveByMemory(ctx context.Context, memoryID valueobjects.MemoryID) (int, error)
}

// ReactionRepository persists emoji reactions
type ReactionRepository interface {
	// Save stores a new reaction. Returns a Conflict error with code
	// DUPLICATE_REACTION when the user already reacted to the memory with
	// the same emoji.
	Save(ctx context.Context, reaction *entities.Reaction) error

	// FindByID looks up a reaction by its ID. Returns a NotFound error
	// when the reaction does not exist.
	FindByID(ctx context.Context, id valueobjects.ReactionID) (*entities.Reaction, error)

	// FindByMemory returns all reactions on a memory in creation order
	FindByMemory(ctx context.Context, memoryID valueobjects.MemoryID) ([]*entities.Reaction, error)

	// FindByMemoryAndUser returns one user's reactions on a memory
	FindByMemoryAndUser(ctx context.Context, memoryID valueobjects.MemoryID, userID string) ([]*entities.Reaction, error)

	// Delete removes a reaction
	Delete(ctx context.Context, reaction *entities.Reaction) error
}

// EventPublisher pushes domain events to the analytics stream
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}

// Cache is a small read-through cache for hot lookups
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
	Delete(key string)
}
