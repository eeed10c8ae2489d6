package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"keepsake-backend/application/ports"
	"keepsake-backend/application/queries"
	"keepsake-backend/application/queries/bus"
	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
)

// ListReactionsHandler returns a memory's reactions in creation order
type ListReactionsHandler struct {
	memoryRepo   ports.MemoryRepository
	reactionRepo ports.ReactionRepository
	logger       *zap.Logger
}

// NewListReactionsHandler creates a ListReactionsHandler
func NewListReactionsHandler(memoryRepo ports.MemoryRepository, reactionRepo ports.ReactionRepository, logger *zap.Logger) *ListReactionsHandler {
	return &ListReactionsHandler{
		memoryRepo:   memoryRepo,
		reactionRepo: reactionRepo,
		logger:       logger,
	}
}

// Handle executes the list reactions query
func (h *ListReactionsHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	query, ok := q.(queries.ListReactionsQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", q)
	}

	memoryID, err := valueobjects.NewMemoryIDFromString(query.MemoryID)
	if err != nil {
		return nil, err
	}

	memory, err := h.memoryRepo.FindByID(ctx, memoryID)
	if err != nil {
		return nil, err
	}
	if !memory.BelongsToFamily(query.FamilyUnitID) {
		return nil, pkgerrors.NewNotFoundError("memory not found")
	}

	reactions, err := h.reactionRepo.FindByMemory(ctx, memoryID)
	if err != nil {
		return nil, err
	}

	views := make([]queries.ReactionView, 0, len(reactions))
	byEmoji := make(map[string]int)
	for _, r := range reactions {
		views = append(views, queries.ReactionView{
			ID:        r.ID().String(),
			MemoryID:  r.MemoryID().String(),
			UserID:    r.UserID(),
			Emoji:     r.Emoji().String(),
			CreatedAt: r.CreatedAt(),
		})
		byEmoji[r.Emoji().String()]++
	}

	return &queries.ListReactionsResult{
		MemoryID:  query.MemoryID,
		Reactions: views,
		ByEmoji:   byEmoji,
		Total:     len(views),
	}, nil
}
