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

func TestCreateMemoryHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("saves a valid memory", func(t *testing.T) {
		memoryRepo := new(mocks.MemoryRepository)
		memoryID := valueobjects.NewMemoryID()

		memoryRepo.On("Save", ctx, mock.MatchedBy(func(m *entities.Memory) bool {
			return m.ID().Equals(memoryID) && m.Status() == entities.MemoryStatusPublished
		})).Return(nil)

		h := NewCreateMemoryHandler(memoryRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.CreateMemoryCommand{
			MemoryID:     memoryID.String(),
			UserID:       "user-1",
			FamilyUnitID: "family-1",
			Title:        "Beach day",
			MemoryDate:   time.Now(),
			Status:       "published",
		})

		require.NoError(t, err)
		memoryRepo.AssertExpectations(t)
	})

	t.Run("rejects an empty title", func(t *testing.T) {
		memoryRepo := new(mocks.MemoryRepository)

		h := NewCreateMemoryHandler(memoryRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.CreateMemoryCommand{
			MemoryID:     valueobjects.NewMemoryID().String(),
			UserID:       "user-1",
			FamilyUnitID: "family-1",
			Title:        "   ",
			MemoryDate:   time.Now(),
		})

		assert.True(t, pkgerrors.IsValidation(err))
		memoryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestUpdateMemoryHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("owner updates their memory", func(t *testing.T) {
		memoryRepo := new(mocks.MemoryRepository)
		memory := publishedMemory(t, "family-1")

		memoryRepo.On("FindByID", ctx, memory.ID()).Return(memory, nil)
		memoryRepo.On("Update", ctx, memory).Return(nil)

		h := NewUpdateMemoryHandler(memoryRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.UpdateMemoryCommand{
			MemoryID:     memory.ID().String(),
			UserID:       "author-1",
			FamilyUnitID: "family-1",
			Title:        "Lake trip",
			MemoryDate:   time.Now(),
		})

		require.NoError(t, err)
		assert.Equal(t, "Lake trip", memory.Title())
	})

	t.Run("family members cannot update someone else's memory", func(t *testing.T) {
		memoryRepo := new(mocks.MemoryRepository)
		memory := publishedMemory(t, "family-1")

		memoryRepo.On("FindByID", ctx, memory.ID()).Return(memory, nil)

		h := NewUpdateMemoryHandler(memoryRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.UpdateMemoryCommand{
			MemoryID:     memory.ID().String(),
			UserID:       "user-2",
			FamilyUnitID: "family-1",
			Title:        "Lake trip",
			MemoryDate:   time.Now(),
		})

		assert.True(t, pkgerrors.IsForbidden(err))
		memoryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("memories from other families look like not found", func(t *testing.T) {
		memoryRepo := new(mocks.MemoryRepository)
		memory := publishedMemory(t, "family-2")

		memoryRepo.On("FindByID", ctx, memory.ID()).Return(memory, nil)

		h := NewUpdateMemoryHandler(memoryRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.UpdateMemoryCommand{
			MemoryID:     memory.ID().String(),
			UserID:       "author-1",
			FamilyUnitID: "family-1",
			Title:        "Lake trip",
			MemoryDate:   time.Now(),
		})

		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestArchiveMemoryHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("owner archives their memory", func(t *testing.T) {
		memoryRepo := new(mocks.MemoryRepository)
		memory := publishedMemory(t, "family-1")

		memoryRepo.On("FindByID", ctx, memory.ID()).Return(memory, nil)
		memoryRepo.On("Update", ctx, memory).Return(nil)

		h := NewArchiveMemoryHandler(memoryRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.ArchiveMemoryCommand{
			MemoryID:     memory.ID().String(),
			UserID:       "author-1",
			FamilyUnitID: "family-1",
		})

		require.NoError(t, err)
		assert.Equal(t, entities.MemoryStatusArchived, memory.Status())
	})

	t.Run("an adult archives another member's memory", func(t *testing.T) {
		memoryRepo := new(mocks.MemoryRepository)
		memory := publishedMemory(t, "family-1")

		memoryRepo.On("FindByID", ctx, memory.ID()).Return(memory, nil)
		memoryRepo.On("Update", ctx, memory).Return(nil)

		h := NewArchiveMemoryHandler(memoryRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.ArchiveMemoryCommand{
			MemoryID:     memory.ID().String(),
			UserID:       "adult-2",
			FamilyUnitID: "family-1",
			IsAdult:      true,
		})

		require.NoError(t, err)
		assert.Equal(t, entities.MemoryStatusArchived, memory.Status())
	})

	t.Run("non-owner without the adult capability is forbidden", func(t *testing.T) {
		memoryRepo := new(mocks.MemoryRepository)
		memory := publishedMemory(t, "family-1")

		memoryRepo.On("FindByID", ctx, memory.ID()).Return(memory, nil)

		h := NewArchiveMemoryHandler(memoryRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.ArchiveMemoryCommand{
			MemoryID:     memory.ID().String(),
			UserID:       "child-1",
			FamilyUnitID: "family-1",
		})

		assert.True(t, pkgerrors.IsForbidden(err))
		memoryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
