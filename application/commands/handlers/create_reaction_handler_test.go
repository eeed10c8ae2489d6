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
	"keepsake-backend/application/services"
	"keepsake-backend/domain/core/entities"
	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
)

func testAnalytics() *services.AnalyticsEmitter {
	publisher := new(mocks.EventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	return services.NewAnalyticsEmitter(publisher, zap.NewNop())
}

func publishedMemory(t *testing.T, familyUnitID string) *entities.Memory {
	t.Helper()
	m, err := entities.NewMemory(valueobjects.NewMemoryID(), "author-1", familyUnitID, "Beach day", "", time.Now(), "", nil, entities.MemoryStatusPublished)
	require.NoError(t, err)
	m.ClearEvents()
	return m
}

func TestCreateReactionHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("saves a valid reaction", func(t *testing.T) {
		memoryRepo := new(mocks.MemoryRepository)
		reactionRepo := new(mocks.ReactionRepository)
		memory := publishedMemory(t, "family-1")

		memoryRepo.On("FindByID", ctx, memory.ID()).Return(memory, nil)
		reactionRepo.On("Save", ctx, mock.AnythingOfType("*entities.Reaction")).Return(nil)

		h := NewCreateReactionHandler(memoryRepo, reactionRepo, testAnalytics(), zap.NewNop())
		out, err := h.Handle(ctx, commands.CreateReactionCommand{
			ReactionID:   valueobjects.NewReactionID().String(),
			MemoryID:     memory.ID().String(),
			UserID:       "user-2",
			FamilyUnitID: "family-1",
			Emoji:        "👍",
		})

		require.NoError(t, err)
		saved, ok := out.(*entities.Reaction)
		require.True(t, ok)
		assert.Equal(t, "👍", saved.Emoji().String())
		assert.Equal(t, "user-2", saved.UserID())
		reactionRepo.AssertExpectations(t)
	})

	t.Run("passes the duplicate error through", func(t *testing.T) {
		memoryRepo := new(mocks.MemoryRepository)
		reactionRepo := new(mocks.ReactionRepository)
		memory := publishedMemory(t, "family-1")

		memoryRepo.On("FindByID", ctx, memory.ID()).Return(memory, nil)
		reactionRepo.On("Save", ctx, mock.Anything).Return(pkgerrors.NewDuplicateReactionError())

		h := NewCreateReactionHandler(memoryRepo, reactionRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.CreateReactionCommand{
			ReactionID:   valueobjects.NewReactionID().String(),
			MemoryID:     memory.ID().String(),
			UserID:       "user-2",
			FamilyUnitID: "family-1",
			Emoji:        "👍",
		})

		assert.True(t, pkgerrors.HasCode(err, "DUPLICATE_REACTION"))
	})

	t.Run("masks memories from other families as not found", func(t *testing.T) {
		memoryRepo := new(mocks.MemoryRepository)
		reactionRepo := new(mocks.ReactionRepository)
		memory := publishedMemory(t, "family-2")

		memoryRepo.On("FindByID", ctx, memory.ID()).Return(memory, nil)

		h := NewCreateReactionHandler(memoryRepo, reactionRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.CreateReactionCommand{
			ReactionID:   valueobjects.NewReactionID().String(),
			MemoryID:     memory.ID().String(),
			UserID:       "user-2",
			FamilyUnitID: "family-1",
			Emoji:        "👍",
		})

		assert.True(t, pkgerrors.IsNotFound(err))
		reactionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an emoji outside the allow-list", func(t *testing.T) {
		memoryRepo := new(mocks.MemoryRepository)
		reactionRepo := new(mocks.ReactionRepository)
		memory := publishedMemory(t, "family-1")

		memoryRepo.On("FindByID", ctx, memory.ID()).Return(memory, nil)

		h := NewCreateReactionHandler(memoryRepo, reactionRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.CreateReactionCommand{
			ReactionID:   valueobjects.NewReactionID().String(),
			MemoryID:     memory.ID().String(),
			UserID:       "user-2",
			FamilyUnitID: "family-1",
			Emoji:        "🙈",
		})

		assert.True(t, pkgerrors.HasCode(err, "INVALID_EMOJI"))
		reactionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestDeleteReactionHandler(t *testing.T) {
	ctx := context.Background()
	memoryID := valueobjects.NewMemoryID()

	storedReaction := func(t *testing.T, userID, familyUnitID string) *entities.Reaction {
		t.Helper()
		emoji, err := valueobjects.NewEmoji("👍")
		require.NoError(t, err)
		return entities.ReconstructReaction(valueobjects.NewReactionID(), memoryID, userID, familyUnitID, emoji, time.Now())
	}

	t.Run("owner removes their reaction", func(t *testing.T) {
		reactionRepo := new(mocks.ReactionRepository)
		reaction := storedReaction(t, "user-1", "family-1")

		reactionRepo.On("FindByID", ctx, reaction.ID()).Return(reaction, nil)
		reactionRepo.On("Delete", ctx, reaction).Return(nil)

		h := NewDeleteReactionHandler(reactionRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.DeleteReactionCommand{
			ReactionID:   reaction.ID().String(),
			UserID:       "user-1",
			FamilyUnitID: "family-1",
		})

		require.NoError(t, err)
		reactionRepo.AssertExpectations(t)
	})

	t.Run("someone else's reaction cannot be removed", func(t *testing.T) {
		reactionRepo := new(mocks.ReactionRepository)
		reaction := storedReaction(t, "user-1", "family-1")

		reactionRepo.On("FindByID", ctx, reaction.ID()).Return(reaction, nil)

		h := NewDeleteReactionHandler(reactionRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.DeleteReactionCommand{
			ReactionID:   reaction.ID().String(),
			UserID:       "user-2",
			FamilyUnitID: "family-1",
		})

		assert.True(t, pkgerrors.IsForbidden(err))
		reactionRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("reactions outside the family look like not found", func(t *testing.T) {
		reactionRepo := new(mocks.ReactionRepository)
		reaction := storedReaction(t, "user-1", "family-2")

		reactionRepo.On("FindByID", ctx, reaction.ID()).Return(reaction, nil)

		h := NewDeleteReactionHandler(reactionRepo, testAnalytics(), zap.NewNop())
		_, err := h.Handle(ctx, commands.DeleteReactionCommand{
			ReactionID:   reaction.ID().String(),
			UserID:       "user-1",
			FamilyUnitID: "family-1",
		})

		assert.True(t, pkgerrors.IsNotFound(err))
	})
}
