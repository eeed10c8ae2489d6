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

// CreateCommentHandler handles CreateCommentCommand. Replying to a
// tombstoned comment is allowed so threads keep their shape; replying
// past the maximum depth is not.
type CreateCommentHandler struct {
	memoryRepo  ports.MemoryRepository
	commentRepo ports.CommentRepository
	analytics   *services.AnalyticsEmitter
	logger      *zap.Logger
}

// NewCreateCommentHandler creates a CreateCommentHandler
func NewCreateCommentHandler(memoryRepo ports.MemoryRepository, commentRepo ports.CommentRepository, analytics *services.AnalyticsEmitter, logger *zap.Logger) *CreateCommentHandler {
	return &CreateCommentHandler{
		memoryRepo:  memoryRepo,
		commentRepo: commentRepo,
		analytics:   analytics,
		logger:      logger,
	}
}

// Handle executes the create comment command
func (h *CreateCommentHandler) Handle(ctx context.Context, c bus.Command) (interface{}, error) {
	cmd, ok := c.(commands.CreateCommentCommand)
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

	var parent *entities.Comment
	if cmd.ParentCommentID != "" {
		parentID, err := valueobjects.NewCommentIDFromString(cmd.ParentCommentID)
		if err != nil {
			return nil, err
		}
		parent, err = h.commentRepo.FindByID(ctx, parentID)
		if err != nil {
			return nil, err
		}
		if parent.FamilyUnitID() != cmd.FamilyUnitID {
			return nil, pkgerrors.NewNotFoundError("comment not found")
		}
	}

	commentID, err := valueobjects.NewCommentIDFromString(cmd.CommentID)
	if err != nil {
		return nil, err
	}

	comment, err := entities.NewComment(commentID, memoryID, cmd.UserID, cmd.FamilyUnitID, cmd.Content, parent)
	if err != nil {
		return nil, err
	}

	if err := h.commentRepo.Save(ctx, comment); err != nil {
		return nil, err
	}

	h.analytics.Emit(comment.GetUncommittedEvents()...)
	comment.ClearEvents()

	h.logger.Info("Comment created",
		zap.String("commentID", comment.ID().String()),
		zap.String("memoryID", cmd.MemoryID),
		zap.String("userID", cmd.UserID),
		zap.Int("depth", comment.Depth()),
	)

	return comment, nil
}
