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

// DeleteCommentHandler handles DeleteCommentCommand. Deleting an already
// deleted comment succeeds without writing anything.
type DeleteCommentHandler struct {
	commentRepo ports.CommentRepository
	analytics   *services.AnalyticsEmitter
	logger      *zap.Logger
}

// NewDeleteCommentHandler creates a DeleteCommentHandler
func NewDeleteCommentHandler(commentRepo ports.CommentRepository, analytics *services.AnalyticsEmitter, logger *zap.Logger) *DeleteCommentHandler {
	return &DeleteCommentHandler{
		commentRepo: commentRepo,
		analytics:   analytics,
		logger:      logger,
	}
}

// Handle executes the delete comment command
func (h *DeleteCommentHandler) Handle(ctx context.Context, c bus.Command) (interface{}, error) {
	cmd, ok := c.(commands.DeleteCommentCommand)
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
	if comment.IsDeleted() {
		return nil, nil
	}

	// Adult capability in the comment's family grants moderation
	if err := comment.SoftDelete(cmd.UserID, cmd.IsAdult); err != nil {
		return nil, err
	}

	if err := h.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	h.analytics.Emit(comment.GetUncommittedEvents()...)
	comment.ClearEvents()

	h.logger.Info("Comment deleted",
		zap.String("commentID", cmd.CommentID),
		zap.String("userID", cmd.UserID),
	)

	return nil, nil
}
