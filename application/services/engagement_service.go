// Package services holds application services shared by several handlers.
package services

import (
	"context"

	"keepsake-backend/application/ports"
	"keepsake-backend/domain/core/valueobjects"
	"keepsake-backend/domain/feed"
)

// EngagementSnapshot is the activity summary for one memory
type EngagementSnapshot struct {
	ReactionCount    int
	CommentCount     int
	UniqueReactors   int
	ReactionsByEmoji map[string]int
}

// Counters converts the snapshot into scoring input
func (s EngagementSnapshot) Counters() feed.Engagement {
	return feed.Engagement{
		ReactionCount:  s.ReactionCount,
		CommentCount:   s.CommentCount,
		UniqueReactors: s.UniqueReactors,
	}
}

// EngagementService aggregates reaction and comment activity per memory
type EngagementService struct {
	reactionRepo ports.ReactionRepository
	commentRepo  ports.CommentRepository
}

// NewEngagementService creates an EngagementService
func NewEngagementService(reactionRepo ports.ReactionRepository, commentRepo ports.CommentRepository) *EngagementService {
	return &EngagementService{
		reactionRepo: reactionRepo,
		commentRepo:  commentRepo,
	}
}

// Snapshot loads the engagement counters for a memory. Deleted comments
// do not count toward engagement.
func (s *EngagementService) Snapshot(ctx context.Context, memoryID valueobjects.MemoryID) (EngagementSnapshot, error) {
	reactions, err := s.reactionRepo.FindByMemory(ctx, memoryID)
	if err != nil {
		return EngagementSnapshot{}, err
	}

	commentCount, err := s.commentRepo.CountActiveByMemory(ctx, memoryID)
	if err != nil {
		return EngagementSnapshot{}, err
	}

	byEmoji := make(map[string]int)
	reactors := make(map[string]struct{})
	for _, r := range reactions {
		byEmoji[r.Emoji().String()]++
		reactors[r.UserID()] = struct{}{}
	}

	return EngagementSnapshot{
		ReactionCount:    len(reactions),
		CommentCount:     commentCount,
		UniqueReactors:   len(reactors),
		ReactionsByEmoji: byEmoji,
	}, nil
}
