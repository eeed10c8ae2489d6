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

// UpdateCommentHandler handles UpdateCommentCommand
type UpdateCommentHandler struct {
	commentRepo ports.CommentRepository
	analytics   *services.AnalyticsEmitter
	logger      *zap.Logger
}

// NewUpdateCommentHandler creates an UpdateCommentHandler
func NewUpdateCommentHandler(commentRepo ports.CommentRepository, analytics *services.AnalyticsEmitter, logger *zap.Logger) *UpdateCommentHandler {
	return &UpdateCommentHandler{
		commentRepo: commentRepo,
		analytics:   analytics,
		logger:      logger,
	}
}

// Handle executes the update comment command
func (h *UpdateCommentHandler) Handle(ctx context.Context, c bus.Command) (interface{}, error) {
	cmd, ok := c.(commands.UpdateCommentCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", c)
	}

	commentID, err := valueobjects.NewCommentIDFromString(cmd.CommentID)
	if err != nil {
		return nil, err
	}

	comment, err := h.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.FamilyUnitID() != cmd.FamilyUnitID {
		return nil, pkgerrors.NewNotFoundError("comment not found")
	}
	if err := comment.UpdateContent(cmd.UserID, cmd.Content); err != nil {
		return nil, err
	}

	if err := h.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	h.analytics.Emit(comment.GetUncommittedEvents()...)
	comment.ClearEvents()

	h.logger.Info("Comment updated",
		zap.String("commentID", cmd.CommentID),
		zap.String("userID", cmd.UserID),
	)

	return comment, nil
}
