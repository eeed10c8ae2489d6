package handlers

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"keepsake-backend/application/queries"
	querybus "keepsake-backend/application/queries/bus"
	"keepsake-backend/domain/feed"
	"keepsake-backend/pkg/auth"
	"keepsake-backend/pkg/common"
	pkgerrors "keepsake-backend/pkg/errors"
)

// FeedHandler handles the ranked family feed endpoint
type FeedHandler struct {
	queryBus *querybus.QueryBus
	errors   *pkgerrors.HTTPHandler
	logger   *zap.Logger
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(queryBus *querybus.QueryBus, errHandler *pkgerrors.HTTPHandler, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{
		queryBus: queryBus,
		errors:   errHandler,
		logger:   logger,
	}
}

// GetFeed handles GET /feed
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Respond(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	filter, err := parseFeedFilter(r)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	pagination, err := common.ExtractPaginationParams(r)
	if err != nil {
		h.errors.Respond(w, r, pkgerrors.NewValidationError("page and page_size must be integers"))
		return
	}

	query := queries.GetFeedQuery{
		UserID:       user.UserID,
		FamilyUnitID: user.FamilyUnitID,
		Filter:       filter,
		Page:         pagination.Page,
		PageSize:     pagination.PageSize,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// parseFeedFilter reads filter criteria from query parameters. Values are
// passed through as-is; validation and defaulting happen in the query handler.
func parseFeedFilter(r *http.Request) (feed.Filter, error) {
	q := r.URL.Query()

	filter := feed.Filter{
		Status:    q.Get("status"),
		UserID:    q.Get("user_id"),
		Search:    q.Get("search"),
		OrderBy:   q.Get("order_by"),
		Direction: q.Get("direction"),
	}

	if raw := q.Get("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				filter.Tags = append(filter.Tags, tag)
			}
		}
	}

	from, err := parseFilterDate(q.Get("date_from"))
	if err != nil {
		return feed.Filter{}, pkgerrors.NewInvalidFilterError("date_from", "must be RFC3339 or YYYY-MM-DD")
	}
	filter.MemoryDateFrom = from

	to, err := parseFilterDate(q.Get("date_to"))
	if err != nil {
		return feed.Filter{}, pkgerrors.NewInvalidFilterError("date_to", "must be RFC3339 or YYYY-MM-DD")
	}
	filter.MemoryDateTo = to

	return filter, nil
}

func parseFilterDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	return nil, pkgerrors.NewValidationError("invalid date")
}
