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

// UpdateMemoryHandler handles UpdateMemoryCommand
type UpdateMemoryHandler struct {
	memoryRepo ports.MemoryRepository
	analytics  *services.AnalyticsEmitter
	logger     *zap.Logger
}

// NewUpdateMemoryHandler creates an UpdateMemoryHandler
func NewUpdateMemoryHandler(memoryRepo ports.MemoryRepository, analytics *services.AnalyticsEmitter, logger *zap.Logger) *UpdateMemoryHandler {
	return &UpdateMemoryHandler{
		memoryRepo: memoryRepo,
		analytics:  analytics,
		logger:     logger,
	}
}

// Handle executes the update memory command
func (h *UpdateMemoryHandler) Handle(ctx context.Context, c bus.Command) (interface{}, error) {
	cmd, ok := c.(commands.UpdateMemoryCommand)
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

	// Memories in other families look like they don't exist
	if !memory.BelongsToFamily(cmd.FamilyUnitID) {
		return nil, pkgerrors.NewNotFoundError("memory not found")
	}
	if !memory.IsOwnedBy(cmd.UserID) {
		return nil, pkgerrors.NewForbiddenError("only the owner can update a memory")
	}

	if err := memory.UpdateDetails(cmd.UserID, cmd.Title, cmd.Description, cmd.MemoryDate, cmd.Location, cmd.Tags); err != nil {
		return nil, err
	}

	if err := h.memoryRepo.Update(ctx, memory); err != nil {
		return nil, err
	}

	h.analytics.Emit(memory.GetUncommittedEvents()...)
	memory.ClearEvents()

	h.logger.Info("Memory updated",
		zap.String("memoryID", cmd.MemoryID),
		zap.String("userID", cmd.UserID),
	)

	return memory, nil
}
