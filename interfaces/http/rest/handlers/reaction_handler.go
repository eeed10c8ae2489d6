package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"keepsake-backend/application/commands"
	"keepsake-backend/application/commands/bus"
	"keepsake-backend/application/queries"
	querybus "keepsake-backend/application/queries/bus"
	"keepsake-backend/domain/core/entities"
	"keepsake-backend/domain/core/valueobjects"
	"keepsake-backend/pkg/auth"
	"keepsake-backend/pkg/common"
	pkgerrors "keepsake-backend/pkg/errors"
	"keepsake-backend/pkg/utils"
)

// ReactionHandler handles reaction endpoints
type ReactionHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.HTTPHandler
	logger     *zap.Logger
}

// NewReactionHandler creates a new reaction handler
func NewReactionHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, errHandler *pkgerrors.HTTPHandler, logger *zap.Logger) *ReactionHandler {
	return &ReactionHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errHandler,
		logger:     logger,
	}
}

// CreateReactionRequest is the request body for adding a reaction
type CreateReactionRequest struct {
	Emoji string `json:"emoji" validate:"required"`
}

// CreateReaction handles POST /memories/{memoryID}/reactions
func (h *ReactionHandler) CreateReaction(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Respond(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	var req CreateReactionRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errors.Respond(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Respond(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	reactionID := valueobjects.NewReactionID().String()

	cmd := commands.CreateReactionCommand{
		ReactionID:   reactionID,
		MemoryID:     chi.URLParam(r, "memoryID"),
		UserID:       user.UserID,
		FamilyUnitID: user.FamilyUnitID,
		Emoji:        req.Emoji,
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	reaction, ok := result.(*entities.Reaction)
	if !ok {
		h.errors.Respond(w, r, pkgerrors.NewInternalError("unexpected command result"))
		return
	}

	common.RespondJSON(w, http.StatusCreated, queries.ReactionView{
		ID:        reaction.ID().String(),
		MemoryID:  reaction.MemoryID().String(),
		UserID:    reaction.UserID(),
		Emoji:     reaction.Emoji().String(),
		CreatedAt: reaction.CreatedAt(),
	})
}

// ListReactions handles GET /memories/{memoryID}/reactions
func (h *ReactionHandler) ListReactions(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Respond(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	query := queries.ListReactionsQuery{
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

// DeleteReaction handles DELETE /reactions/{reactionID}
func (h *ReactionHandler) DeleteReaction(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Respond(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	cmd := commands.DeleteReactionCommand{
		ReactionID:   chi.URLParam(r, "reactionID"),
		UserID:       user.UserID,
		FamilyUnitID: user.FamilyUnitID,
	}

	if _, err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	common.RespondNoContent(w)
}
