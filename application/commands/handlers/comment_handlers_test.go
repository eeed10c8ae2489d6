package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"keepsake-backend/application/commands"
	"keepsake-backend/application/ports/mocks"
	"keepsake-backend/domain/core/entities"
	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
)

func storedThreadComment(t *testing.T, memoryID valueobjects.MemoryID, userID, familyUnitID string, depth int, deleted bool) *entities.Comment {
	t.Helper()
	content, err := valueobjects.NewCommentContent("existing comment")
	require.NoError(t, err)
	state := entities.CommentStateActive
	if deleted {
		state = entities.CommentStateDeleted
	}
	now := time.Now().UTC()
	return entities.ReconstructComment(valueobjects.NewCommentID(), memoryID, userID, familyUnitID, nil, depth, content, state, now, now)
}

func TestCreateCommentHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("saves a top-level comment", func(t *testing.T) {
		memoryRepo := new(mocks.MemoryRepository)
		commentRepo := new(mocks.CommentRepository)
		memory := publishedMemory(t, "family-1")

		memoryRepo.On("FindByID", ctx, memory.ID()).Return(memory, nil)
		commentRepo.On("Save", ctx, mock.AnythingOfType("*entities.Comment")).Return(nil)

		h := NewCreateCommentHandler(memoryRepo, commentRepo, testAnalytics(), zap.NewNop())
		out, err := h.Handle(ctx, commands.CreateCommentCommand{
			CommentID:    valueobjects.NewCommentID().String(),
			MemoryID:     memory.ID().String(),
			UserID:       "user-2",
			FamilyUnitID: "family-1",
			Content:      "what a day!",
		})

		require.NoError(t, err)
		saved, ok := out.(*entities.Comment)
		require.True(t, ok)
		assert.Equal(t, "what a day!", saved.Content())
		assert.Equal(t, 0, saved.Depth())
		commentRepo.AssertExpectations(t)
	})

	t.Run("saves a reply under its parent", func(t *testing.T) {
		memoryRepo := new(mocks.MemoryRepository)
		commentRepo := new(mocks.CommentRepository)
		memory := publishedMemory(t, "family-1")
		parent := storedThreadComment(t, memory.ID(), "user-1", "family-1", 0, false)

		memoryRepo.On("FindByID", ctx, memory.ID()).Return(memory, nil)
		commentRepo.On("FindByID", ctx, parent.ID()).Return(parent, nil)
		commentRepo.On("Save", ctx, mock.MatchedBy(func(c *entities.Comment) bool {
			return c.Depth() == 1 && c.ParentCommentID() != nil
		})).Return(nil)

		h := NewCreateCommentHandler(memoryRepo, commentRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.CreateCommentCommand{
			CommentID:       valueobjects.NewCommentID().String(),
			MemoryID:        memory.ID().String(),
			UserID:          "user-2",
			FamilyUnitID:    "family-1",
			Content:         "agreed",
			ParentCommentID: parent.ID().String(),
		})

		require.NoError(t, err)
		commentRepo.AssertExpectations(t)
	})

	t.Run("replying at maximum depth fails", func(t *testing.T) {
		memoryRepo := new(mocks.MemoryRepository)
		commentRepo := new(mocks.CommentRepository)
		memory := publishedMemory(t, "family-1")
		parent := storedThreadComment(t, memory.ID(), "user-1", "family-1", 3, false)

		memoryRepo.On("FindByID", ctx, memory.ID()).Return(memory, nil)
		commentRepo.On("FindByID", ctx, parent.ID()).Return(parent, nil)

		h := NewCreateCommentHandler(memoryRepo, commentRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.CreateCommentCommand{
			CommentID:       valueobjects.NewCommentID().String(),
			MemoryID:        memory.ID().String(),
			UserID:          "user-2",
			FamilyUnitID:    "family-1",
			Content:         "one level too far",
			ParentCommentID: parent.ID().String(),
		})

		assert.True(t, pkgerrors.HasCode(err, "NESTING_DEPTH_EXCEEDED"))
		commentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("replying to a tombstone is allowed", func(t *testing.T) {
		memoryRepo := new(mocks.MemoryRepository)
		commentRepo := new(mocks.CommentRepository)
		memory := publishedMemory(t, "family-1")
		parent := storedThreadComment(t, memory.ID(), "user-1", "family-1", 0, true)

		memoryRepo.On("FindByID", ctx, memory.ID()).Return(memory, nil)
		commentRepo.On("FindByID", ctx, parent.ID()).Return(parent, nil)
		commentRepo.On("Save", ctx, mock.Anything).Return(nil)

		h := NewCreateCommentHandler(memoryRepo, commentRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.CreateCommentCommand{
			CommentID:       valueobjects.NewCommentID().String(),
			MemoryID:        memory.ID().String(),
			UserID:          "user-2",
			FamilyUnitID:    "family-1",
			Content:         "replying anyway",
			ParentCommentID: parent.ID().String(),
		})

		require.NoError(t, err)
	})

	t.Run("memories from other families look like not found", func(t *testing.T) {
		memoryRepo := new(mocks.MemoryRepository)
		commentRepo := new(mocks.CommentRepository)
		memory := publishedMemory(t, "family-2")

		memoryRepo.On("FindByID", ctx, memory.ID()).Return(memory, nil)

		h := NewCreateCommentHandler(memoryRepo, commentRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.CreateCommentCommand{
			CommentID:    valueobjects.NewCommentID().String(),
			MemoryID:     memory.ID().String(),
			UserID:       "user-2",
			FamilyUnitID: "family-1",
			Content:      "hello?",
		})

		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestUpdateCommentHandler(t *testing.T) {
	ctx := context.Background()
	memoryID := valueobjects.NewMemoryID()

	t.Run("author edits their comment", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		comment := storedThreadComment(t, memoryID, "user-1", "family-1", 0, false)

		commentRepo.On("FindByID", ctx, comment.ID()).Return(comment, nil)
		commentRepo.On("Update", ctx, comment).Return(nil)

		h := NewUpdateCommentHandler(commentRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.UpdateCommentCommand{
			CommentID:    comment.ID().String(),
			UserID:       "user-1",
			FamilyUnitID: "family-1",
			Content:      "edited",
		})

		require.NoError(t, err)
		assert.Equal(t, "edited", comment.Content())
	})

	t.Run("editing someone else's comment is forbidden", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		comment := storedThreadComment(t, memoryID, "user-1", "family-1", 0, false)

		commentRepo.On("FindByID", ctx, comment.ID()).Return(comment, nil)

		h := NewUpdateCommentHandler(commentRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.UpdateCommentCommand{
			CommentID:    comment.ID().String(),
			UserID:       "user-2",
			FamilyUnitID: "family-1",
			Content:      "hijacked",
		})

		assert.True(t, pkgerrors.IsForbidden(err))
		commentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("editing a deleted comment behaves as not found", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		comment := storedThreadComment(t, memoryID, "user-1", "family-1", 0, true)

		commentRepo.On("FindByID", ctx, comment.ID()).Return(comment, nil)

		h := NewUpdateCommentHandler(commentRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.UpdateCommentCommand{
			CommentID:    comment.ID().String(),
			UserID:       "user-1",
			FamilyUnitID: "family-1",
			Content:      "resurrection",
		})

		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestDeleteCommentHandler(t *testing.T) {
	ctx := context.Background()
	memoryID := valueobjects.NewMemoryID()

	t.Run("author deletes their comment", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		comment := storedThreadComment(t, memoryID, "user-1", "family-1", 0, false)

		commentRepo.On("FindByID", ctx, comment.ID()).Return(comment, nil)
		commentRepo.On("Update", ctx, comment).Return(nil)

		h := NewDeleteCommentHandler(commentRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.DeleteCommentCommand{
			CommentID:    comment.ID().String(),
			UserID:       "user-1",
			FamilyUnitID: "family-1",
		})

		require.NoError(t, err)
		assert.True(t, comment.IsDeleted())
	})

	t.Run("an adult deletes another member's comment", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		comment := storedThreadComment(t, memoryID, "child-1", "family-1", 0, false)

		commentRepo.On("FindByID", ctx, comment.ID()).Return(comment, nil)
		commentRepo.On("Update", ctx, comment).Return(nil)

		h := NewDeleteCommentHandler(commentRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.DeleteCommentCommand{
			CommentID:    comment.ID().String(),
			UserID:       "adult-1",
			FamilyUnitID: "family-1",
			IsAdult:      true,
		})

		require.NoError(t, err)
		assert.True(t, comment.IsDeleted())
	})

	t.Run("non-author without the adult capability is forbidden", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		comment := storedThreadComment(t, memoryID, "user-1", "family-1", 0, false)

		commentRepo.On("FindByID", ctx, comment.ID()).Return(comment, nil)

		h := NewDeleteCommentHandler(commentRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.DeleteCommentCommand{
			CommentID:    comment.ID().String(),
			UserID:       "user-2",
			FamilyUnitID: "family-1",
		})

		assert.True(t, pkgerrors.IsForbidden(err))
		assert.False(t, comment.IsDeleted())
	})

	t.Run("deleting an already deleted comment is a no-op", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		comment := storedThreadComment(t, memoryID, "user-1", "family-1", 0, true)

		commentRepo.On("FindByID", ctx, comment.ID()).Return(comment, nil)

		h := NewDeleteCommentHandler(commentRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.DeleteCommentCommand{
			CommentID:    comment.ID().String(),
			UserID:       "user-1",
			FamilyUnitID: "family-1",
		})

		require.NoError(t, err)
		commentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("comments outside the family look like not found", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		comment := storedThreadComment(t, memoryID, "user-1", "family-2", 0, false)

		commentRepo.On("FindByID", ctx, comment.ID()).Return(comment, nil)

		h := NewDeleteCommentHandler(commentRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.DeleteCommentCommand{
			CommentID:    comment.ID().String(),
			UserID:       "user-1",
			FamilyUnitID: "family-1",
		})

		assert.True(t, pkgerrors.IsNotFound(err))
	})
}
