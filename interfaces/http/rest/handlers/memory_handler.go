package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"keepsake-backend/application/commands"
	"keepsake-backend/application/commands/bus"
	"keepsake-backend/application/queries"
	querybus "keepsake-backend/application/queries/bus"
	"keepsake-backend/domain/core/valueobjects"
	"keepsake-backend/pkg/auth"
	"keepsake-backend/pkg/common"
	pkgerrors "keepsake-backend/pkg/errors"
	"keepsake-backend/pkg/utils"
)

const maxBodyBytes = 1 << 20

// MemoryHandler handles memory CRUD endpoints
type MemoryHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.HTTPHandler
	logger     *zap.Logger
}

// NewMemoryHandler creates a new memory handler
func NewMemoryHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, errHandler *pkgerrors.HTTPHandler, logger *zap.Logger) *MemoryHandler {
	return &MemoryHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errHandler,
		logger:     logger,
	}
}

// CreateMemoryRequest is the request body for creating a memory
type CreateMemoryRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=10000"`
	MemoryDate  string   `json:"memory_date" validate:"required"`
	Location    string   `json:"location" validate:"max=500"`
	Tags        []string `json:"tags" validate:"max=20"`
	Status      string   `json:"status" validate:"omitempty,oneof=draft published"`
}

// UpdateMemoryRequest is the request body for updating a memory
type UpdateMemoryRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=10000"`
	MemoryDate  string   `json:"memory_date" validate:"required"`
	Location    string   `json:"location" validate:"max=500"`
	Tags        []string `json:"tags" validate:"max=20"`
}

// CreateMemory handles POST /memories
func (h *MemoryHandler) CreateMemory(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Respond(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	var req CreateMemoryRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errors.Respond(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Respond(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	memoryDate, err := parseMemoryDate(req.MemoryDate)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	memoryID := valueobjects.NewMemoryID().String()

	cmd := commands.CreateMemoryCommand{
		MemoryID:     memoryID,
		UserID:       user.UserID,
		FamilyUnitID: user.FamilyUnitID,
		Title:        req.Title,
		Description:  req.Description,
		MemoryDate:   memoryDate,
		Location:     req.Location,
		Tags:         req.Tags,
		Status:       req.Status,
	}

	if _, err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"memory_id": memoryID,
	})
}

// GetMemory handles GET /memories/{memoryID}
func (h *MemoryHandler) GetMemory(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Respond(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	query := queries.GetMemoryQuery{
		MemoryID:     chi.URLParam(r, "memoryID"),
		UserID:       user.UserID,
		FamilyUnitID: user.FamilyUnitID,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// UpdateMemory handles PUT /memories/{memoryID}
func (h *MemoryHandler) UpdateMemory(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Respond(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	var req UpdateMemoryRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errors.Respond(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Respond(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	memoryDate, err := parseMemoryDate(req.MemoryDate)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	cmd := commands.UpdateMemoryCommand{
		MemoryID:     chi.URLParam(r, "memoryID"),
		UserID:       user.UserID,
		FamilyUnitID: user.FamilyUnitID,
		Title:        req.Title,
		Description:  req.Description,
		MemoryDate:   memoryDate,
		Location:     req.Location,
		Tags:         req.Tags,
	}

	if _, err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"memory_id": cmd.MemoryID,
	})
}

// ArchiveMemory handles DELETE /memories/{memoryID}
func (h *MemoryHandler) ArchiveMemory(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Respond(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	cmd := commands.ArchiveMemoryCommand{
		MemoryID:     chi.URLParam(r, "memoryID"),
		UserID:       user.UserID,
		FamilyUnitID: user.FamilyUnitID,
		IsAdult:      user.IsAdult(),
	}

	if _, err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	common.RespondNoContent(w)
}

// parseMemoryDate accepts RFC3339 or a bare calendar date
func parseMemoryDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, pkgerrors.NewValidationError("memory_date is required")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, pkgerrors.NewValidationError("memory_date must be RFC3339 or YYYY-MM-DD")
}
