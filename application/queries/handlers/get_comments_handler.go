package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"keepsake-backend/application/ports"
	"keepsake-backend/application/queries"
	"keepsake-backend/application/queries/bus"
	"keepsake-backend/application/services"
	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
)

// GetCommentsHandler returns a memory's comment threads with deleted
// comments tombstoned in place.
type GetCommentsHandler struct {
	memoryRepo  ports.MemoryRepository
	commentRepo ports.CommentRepository
	threads     *services.ThreadBuilder
	logger      *zap.Logger
}

// NewGetCommentsHandler creates a GetCommentsHandler
func NewGetCommentsHandler(memoryRepo ports.MemoryRepository, commentRepo ports.CommentRepository, threads *services.ThreadBuilder, logger *zap.Logger) *GetCommentsHandler {
	return &GetCommentsHandler{
		memoryRepo:  memoryRepo,
		commentRepo: commentRepo,
		threads:     threads,
		logger:      logger,
	}
}

// Handle executes the get comments query
func (h *GetCommentsHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	query, ok := q.(queries.GetCommentsQuery)
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

	comments, err := h.commentRepo.FindByMemory(ctx, memoryID)
	if err != nil {
		return nil, err
	}

	threads := h.threads.Build(comments, query.Limit)

	views := make([]queries.CommentView, 0, len(threads))
	for _, t := range threads {
		view := toCommentView(t)
		if !query.IncludeReplies {
			view.Replies = nil
		}
		views = append(views, view)
	}

	return &queries.GetCommentsResult{
		MemoryID: query.MemoryID,
		Comments: views,
		Total:    len(comments),
	}, nil
}

func toCommentView(t *services.CommentThread) queries.CommentView {
	c := t.Comment

	view := queries.CommentView{
		ID:         c.ID().String(),
		MemoryID:   c.MemoryID().String(),
		UserID:     c.UserID(),
		Depth:      c.Depth(),
		Content:    c.Content(),
		IsDeleted:  c.IsDeleted(),
		ReplyCount: t.ReplyCount,
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	}
	if parentID := c.ParentCommentID(); parentID != nil {
		view.ParentCommentID = parentID.String()
	}
	for _, reply := range t.Replies {
		view.Replies = append(view.Replies, toCommentView(reply))
	}
	return view
}
