package handlers

import (
	"net/http"
	"strconv"

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

// CommentHandler handles comment thread endpoints
type CommentHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.HTTPHandler
	logger     *zap.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, errHandler *pkgerrors.HTTPHandler, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errHandler,
		logger:     logger,
	}
}

// CreateCommentRequest is the request body for adding a comment
type CreateCommentRequest struct {
	Content         string `json:"content" validate:"required,max=5000"`
	ParentCommentID string `json:"parent_comment_id,omitempty" validate:"omitempty,uuid"`
}

// UpdateCommentRequest is the request body for editing a comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

// CreateComment handles POST /memories/{memoryID}/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Respond(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	var req CreateCommentRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errors.Respond(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Respond(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	commentID := valueobjects.NewCommentID().String()

	cmd := commands.CreateCommentCommand{
		CommentID:       commentID,
		MemoryID:        chi.URLParam(r, "memoryID"),
		UserID:          user.UserID,
		FamilyUnitID:    user.FamilyUnitID,
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	comment, ok := result.(*entities.Comment)
	if !ok {
		h.errors.Respond(w, r, pkgerrors.NewInternalError("unexpected command result"))
		return
	}

	common.RespondJSON(w, http.StatusCreated, commentResponse(comment))
}

// commentResponse flattens a comment entity into its API view. Replies
// are never echoed on writes.
func commentResponse(comment *entities.Comment) queries.CommentView {
	view := queries.CommentView{
		ID:        comment.ID().String(),
		MemoryID:  comment.MemoryID().String(),
		UserID:    comment.UserID(),
		Depth:     comment.Depth(),
		Content:   comment.Content(),
		IsDeleted: comment.IsDeleted(),
		CreatedAt: comment.CreatedAt(),
		UpdatedAt: comment.UpdatedAt(),
	}
	if parentID := comment.ParentCommentID(); parentID != nil {
		view.ParentCommentID = parentID.String()
	}
	return view
}

// GetComments handles GET /memories/{memoryID}/comments
func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Respond(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.errors.Respond(w, r, pkgerrors.NewValidationError("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	includeReplies := true
	if raw := r.URL.Query().Get("include_replies"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.errors.Respond(w, r, pkgerrors.NewValidationError("include_replies must be a boolean"))
			return
		}
		includeReplies = parsed
	}

	query := queries.GetCommentsQuery{
		MemoryID:       chi.URLParam(r, "memoryID"),
		UserID:         user.UserID,
		FamilyUnitID:   user.FamilyUnitID,
		IncludeReplies: includeReplies,
		Limit:          limit,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// UpdateComment handles PUT /comments/{commentID}
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Respond(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	var req UpdateCommentRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errors.Respond(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Respond(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	cmd := commands.UpdateCommentCommand{
		CommentID:    chi.URLParam(r, "commentID"),
		UserID:       user.UserID,
		FamilyUnitID: user.FamilyUnitID,
		Content:      req.Content,
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	comment, ok := result.(*entities.Comment)
	if !ok {
		h.errors.Respond(w, r, pkgerrors.NewInternalError("unexpected command result"))
		return
	}

	common.RespondJSON(w, http.StatusOK, commentResponse(comment))
}

// DeleteComment handles DELETE /comments/{commentID}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Respond(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	cmd := commands.DeleteCommentCommand{
		CommentID:    chi.URLParam(r, "commentID"),
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
