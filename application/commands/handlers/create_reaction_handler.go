package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"keepsake-backend/application/commands"
	"keepsake-backend/application/commands/bus"
	"keepsake-backend/application/ports"
	"keepsake-backend/application/services"
	"keepsake-backend/domain/core/entities"
	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
)

// CreateReactionHandler handles CreateReactionCommand. Duplicate
// detection lives in the repository's conditional write, so two
// concurrent identical reactions race safely: one wins, one gets the
// duplicate error.
type CreateReactionHandler struct {
	memoryRepo   ports.MemoryRepository
	reactionRepo ports.ReactionRepository
	analytics    *services.AnalyticsEmitter
	logger       *zap.Logger
}

// NewCreateReactionHandler creates a CreateReactionHandler
func NewCreateReactionHandler(memoryRepo ports.MemoryRepository, reactionRepo ports.ReactionRepository, analytics *services.AnalyticsEmitter, logger *zap.Logger) *CreateReactionHandler {
	return &CreateReactionHandler{
		memoryRepo:   memoryRepo,
		reactionRepo: reactionRepo,
		analytics:    analytics,
		logger:       logger,
	}
}

// Handle executes the create reaction command
func (h *CreateReactionHandler) Handle(ctx context.Context, c bus.Command) (interface{}, error) {
	cmd, ok := c.(commands.CreateReactionCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", c)
	}

	memoryID, err := valueobjects.NewMemoryIDFromString(cmd.MemoryID)
	if err != nil {
		return nil, err
	}

	memory, err := h.memoryRepo.FindByID(ctx, memoryID)
	if err != nil {
		return nil, err
	}
	if !memory.BelongsToFamily(cmd.FamilyUnitID) {
		return nil, pkgerrors.NewNotFoundError("memory not found")
	}

	reactionID, err := valueobjects.NewReactionIDFromString(cmd.ReactionID)
	if err != nil {
		return nil, err
	}

	reaction, err := entities.NewReaction(reactionID, memoryID, cmd.UserID, cmd.FamilyUnitID, cmd.Emoji)
	if err != nil {
		return nil, err
	}

	if err := h.reactionRepo.Save(ctx, reaction); err != nil {
		return nil, err
	}

	h.analytics.Emit(reaction.GetUncommittedEvents()...)
	reaction.ClearEvents()

	h.logger.Info("Reaction created",
		zap.String("reactionID", reaction.ID().String()),
		zap.String("memoryID", cmd.MemoryID),
		zap.String("userID", cmd.UserID),
		zap.String("emoji", cmd.Emoji),
	)

	return reaction, nil
}
