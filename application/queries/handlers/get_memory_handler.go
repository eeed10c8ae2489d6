package handlers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"keepsake-backend/application/ports"
	"keepsake-backend/application/queries"
	"keepsake-backend/application/queries/bus"
	"keepsake-backend/application/services"
	"keepsake-backend/domain/core/valueobjects"
	"keepsake-backend/domain/feed"
	pkgerrors "keepsake-backend/pkg/errors"
)

// GetMemoryHandler returns a single memory with its engagement counters
// and current feed score.
type GetMemoryHandler struct {
	memoryRepo ports.MemoryRepository
	engagement *services.EngagementService
	logger     *zap.Logger
}

// NewGetMemoryHandler creates a GetMemoryHandler
func NewGetMemoryHandler(memoryRepo ports.MemoryRepository, engagement *services.EngagementService, logger *zap.Logger) *GetMemoryHandler {
	return &GetMemoryHandler{
		memoryRepo: memoryRepo,
		engagement: engagement,
		logger:     logger,
	}
}

// Handle executes the get memory query
func (h *GetMemoryHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	query, ok := q.(queries.GetMemoryQuery)
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

	snap, err := h.engagement.Snapshot(ctx, memoryID)
	if err != nil {
		return nil, err
	}

	item := queries.FeedItem{
		ID:               memory.ID().String(),
		UserID:           memory.UserID(),
		FamilyUnitID:     memory.FamilyUnitID(),
		Title:            memory.Title(),
		Description:      memory.Description(),
		MemoryDate:       memory.MemoryDate(),
		Location:         memory.Location(),
		Tags:             memory.Tags(),
		Status:           string(memory.Status()),
		CreatedAt:        memory.CreatedAt(),
		UpdatedAt:        memory.UpdatedAt(),
		FeedScore:        feed.Score(time.Now().UTC(), memory.CreatedAt(), snap.Counters()),
		ReactionCount:    snap.ReactionCount,
		CommentCount:     snap.CommentCount,
		UniqueReactors:   snap.UniqueReactors,
		ReactionsByEmoji: snap.ReactionsByEmoji,
	}

	return &item, nil
}
