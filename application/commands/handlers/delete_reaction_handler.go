package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"keepsake-backend/application/commands"
	"keepsake-backend/application/commands/bus"
	"keepsake-backend/application/ports"
	"keepsake-backend/application/services"
	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
)

// DeleteReactionHandler handles DeleteReactionCommand
type DeleteReactionHandler struct {
	reactionRepo ports.ReactionRepository
	analytics    *services.AnalyticsEmitter
	logger       *zap.Logger
}

// NewDeleteReactionHandler creates a DeleteReactionHandler
func NewDeleteReactionHandler(reactionRepo ports.ReactionRepository, analytics *services.AnalyticsEmitter, logger *zap.Logger) *DeleteReactionHandler {
	return &DeleteReactionHandler{
		reactionRepo: reactionRepo,
		analytics:    analytics,
		logger:       logger,
	}
}

// Handle executes the delete reaction command
func (h *DeleteReactionHandler) Handle(ctx context.Context, c bus.Command) (interface{}, error) {
	cmd, ok := c.(commands.DeleteReactionCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", c)
	}

	reactionID, err := valueobjects.NewReactionIDFromString(cmd.ReactionID)
	if err != nil {
		return nil, err
	}

	reaction, err := h.reactionRepo.FindByID(ctx, reactionID)
	if err != nil {
		return nil, err
	}

	if reaction.FamilyUnitID() != cmd.FamilyUnitID {
		return nil, pkgerrors.NewNotFoundError("reaction not found")
	}
	if err := reaction.Remove(cmd.UserID); err != nil {
		return nil, err
	}

	if err := h.reactionRepo.Delete(ctx, reaction); err != nil {
		return nil, err
	}

	h.analytics.Emit(reaction.GetUncommittedEvents()...)
	reaction.ClearEvents()

	h.logger.Info("Reaction deleted",
		zap.String("reactionID", cmd.ReactionID),
		zap.String("userID", cmd.UserID),
	)

	return nil, nil
}
