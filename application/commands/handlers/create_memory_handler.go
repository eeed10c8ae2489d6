// Package handlers implements the command side of the application layer.
// Each handler is registered on the command bus for one command type.
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
)

// CreateMemoryHandler handles CreateMemoryCommand
type CreateMemoryHandler struct {
	memoryRepo ports.MemoryRepository
	analytics  *services.AnalyticsEmitter
	logger     *zap.Logger
}

// NewCreateMemoryHandler creates a CreateMemoryHandler
func NewCreateMemoryHandler(memoryRepo ports.MemoryRepository, analytics *services.AnalyticsEmitter, logger *zap.Logger) *CreateMemoryHandler {
	return &CreateMemoryHandler{
		memoryRepo: memoryRepo,
		analytics:  analytics,
		logger:     logger,
	}
}

// Handle executes the create memory command
func (h *CreateMemoryHandler) Handle(ctx context.Context, c bus.Command) (interface{}, error) {
	cmd, ok := c.(commands.CreateMemoryCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", c)
	}

	memoryID, err := valueobjects.NewMemoryIDFromString(cmd.MemoryID)
	if err != nil {
		return nil, err
	}

	memory, err := entities.NewMemory(
		memoryID,
		cmd.UserID,
		cmd.FamilyUnitID,
		cmd.Title,
		cmd.Description,
		cmd.MemoryDate,
		cmd.Location,
		cmd.Tags,
		entities.MemoryStatus(cmd.Status),
	)
	if err != nil {
		return nil, err
	}

	if err := h.memoryRepo.Save(ctx, memory); err != nil {
		return nil, err
	}

	h.analytics.Emit(memory.GetUncommittedEvents()...)
	memory.ClearEvents()

	h.logger.Info("Memory created",
		zap.String("memoryID", memory.ID().String()),
		zap.String("userID", cmd.UserID),
		zap.String("familyUnitID", cmd.FamilyUnitID),
		zap.String("status", string(memory.Status())),
	)

	return memory, nil
}
