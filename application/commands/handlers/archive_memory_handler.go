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

// ArchiveMemoryHandler handles ArchiveMemoryCommand
type ArchiveMemoryHandler struct {
	memoryRepo ports.MemoryRepository
	analytics  *services.AnalyticsEmitter
	logger     *zap.Logger
}

// NewArchiveMemoryHandler creates an ArchiveMemoryHandler
func NewArchiveMemoryHandler(memoryRepo ports.MemoryRepository, analytics *services.AnalyticsEmitter, logger *zap.Logger) *ArchiveMemoryHandler {
	return &ArchiveMemoryHandler{
		memoryRepo: memoryRepo,
		analytics:  analytics,
		logger:     logger,
	}
}

// Handle executes the archive memory command
func (h *ArchiveMemoryHandler) Handle(ctx context.Context, c bus.Command) (interface{}, error) {
	cmd, ok := c.(commands.ArchiveMemoryCommand)
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
	if !memory.IsOwnedBy(cmd.UserID) && !cmd.IsAdult {
		return nil, pkgerrors.NewForbiddenError("not allowed to archive this memory")
	}

	memory.Archive(cmd.UserID)

	if err := h.memoryRepo.Update(ctx, memory); err != nil {
		return nil, err
	}

	h.analytics.Emit(memory.GetUncommittedEvents()...)
	memory.ClearEvents()

	h.logger.Info("Memory archived",
		zap.String("memoryID", cmd.MemoryID),
		zap.String("userID", cmd.UserID),
	)

	return memory, nil
}
