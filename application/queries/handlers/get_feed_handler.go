// Package handlers implements the query side of the application layer.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"keepsake-backend/application/ports"
	"keepsake-backend/application/queries"
	"keepsake-backend/application/queries/bus"
	"keepsake-backend/application/services"
	"keepsake-backend/domain/core/entities"
	"keepsake-backend/domain/core/validators"
	"keepsake-backend/domain/feed"
	"keepsake-backend/pkg/common"
	pkgerrors "keepsake-backend/pkg/errors"
)

// feedEntry pairs a memory with its engagement snapshot and score during
// assembly.
type feedEntry struct {
	memory *entities.Memory
	snap   services.EngagementSnapshot
	score  float64
}

// GetFeedHandler assembles the ranked family feed. Scores are computed
// per request: engagement is gathered concurrently for every candidate
// memory, the full set is ranked, and only then is the requested page cut
// and hydrated with previews.
type GetFeedHandler struct {
	memoryRepo   ports.MemoryRepository
	reactionRepo ports.ReactionRepository
	commentRepo  ports.CommentRepository
	engagement   *services.EngagementService
	threads      *services.ThreadBuilder
	validator    *validators.FeedValidator
	topComments  int
	timeout      time.Duration
	logger       *zap.Logger
}

// NewGetFeedHandler creates a GetFeedHandler
func NewGetFeedHandler(
	memoryRepo ports.MemoryRepository,
	reactionRepo ports.ReactionRepository,
	commentRepo ports.CommentRepository,
	engagement *services.EngagementService,
	threads *services.ThreadBuilder,
	validator *validators.FeedValidator,
	topComments int,
	timeout time.Duration,
	logger *zap.Logger,
) *GetFeedHandler {
	return &GetFeedHandler{
		memoryRepo:   memoryRepo,
		reactionRepo: reactionRepo,
		commentRepo:  commentRepo,
		engagement:   engagement,
		threads:      threads,
		validator:    validator,
		topComments:  topComments,
		timeout:      timeout,
		logger:       logger,
	}
}

// Handle executes the feed query
func (h *GetFeedHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	query, ok := q.(queries.GetFeedQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", q)
	}

	filter := query.Filter
	if err := h.validator.ValidateFilter(&filter); err != nil {
		return nil, err
	}

	page := query.Page
	if page == 0 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize == 0 {
		pageSize = common.DefaultPageSize
	}
	if err := h.validator.ValidatePagination(page, pageSize); err != nil {
		return nil, err
	}

	// The whole assembly shares one deadline. A feed that cannot complete
	// in time returns a timeout, never a partial page.
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	memories, err := h.memoryRepo.FindByFamily(ctx, query.FamilyUnitID, filter)
	if err != nil {
		return nil, timeoutOr(ctx, err)
	}

	entries, err := h.gatherEngagement(ctx, memories)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i := range entries {
		entries[i].score = feed.Score(now, entries[i].memory.CreatedAt(), entries[i].snap.Counters())
	}

	h.rank(entries, filter.OrderBy, filter.Direction)

	total := len(entries)
	pagination := common.BuildPaginationMeta(page, pageSize, total)

	start := common.PaginationParams{Page: page, PageSize: pageSize}.CalculateOffset()
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	pageEntries := entries[start:end]

	items := make([]queries.FeedItem, 0, len(pageEntries))
	for _, e := range pageEntries {
		item, err := h.hydrate(ctx, e, query.UserID)
		if err != nil {
			return nil, timeoutOr(ctx, err)
		}
		items = append(items, item)
	}

	return &queries.FeedResult{
		Items:      items,
		Pagination: pagination,
		TotalCount: total,
	}, nil
}

// gatherEngagement loads reaction and comment counters for every memory
// concurrently. A memory whose counters cannot be loaded is logged and
// excluded rather than failing the whole feed, unless the deadline is the
// cause.
func (h *GetFeedHandler) gatherEngagement(ctx context.Context, memories []*entities.Memory) ([]feedEntry, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		entries  = make([]feedEntry, 0, len(memories))
		timedOut bool
	)

	for _, m := range memories {
		wg.Add(1)
		go func(m *entities.Memory) {
			defer wg.Done()

			snap, err := h.engagement.Snapshot(ctx, m.ID())
			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
					mu.Lock()
					timedOut = true
					mu.Unlock()
					return
				}
				h.logger.Error("Excluding memory from feed",
					zap.String("memoryID", m.ID().String()),
					zap.Error(err),
				)
				return
			}

			mu.Lock()
			entries = append(entries, feedEntry{memory: m, snap: snap})
			mu.Unlock()
		}(m)
	}
	wg.Wait()

	if timedOut || ctx.Err() != nil {
		return nil, pkgerrors.NewTimeoutError("feed assembly timed out")
	}
	return entries, nil
}

// rank orders entries in place. Ties always break by newest created_at,
// then ascending ID, so ordering is total and stable across requests.
func (h *GetFeedHandler) rank(entries []feedEntry, orderBy, direction string) {
	asc := direction == feed.DirectionAsc

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		switch orderBy {
		case feed.OrderByCreatedAt:
			if !a.memory.CreatedAt().Equal(b.memory.CreatedAt()) {
				if asc {
					return a.memory.CreatedAt().Before(b.memory.CreatedAt())
				}
				return a.memory.CreatedAt().After(b.memory.CreatedAt())
			}
		case feed.OrderByMemoryDate:
			if !a.memory.MemoryDate().Equal(b.memory.MemoryDate()) {
				if asc {
					return a.memory.MemoryDate().Before(b.memory.MemoryDate())
				}
				return a.memory.MemoryDate().After(b.memory.MemoryDate())
			}
		default: // feed score
			if asc && a.score != b.score {
				return a.score < b.score
			}
			return feed.Less(
				a.score, a.memory.CreatedAt(), a.memory.ID().String(),
				b.score, b.memory.CreatedAt(), b.memory.ID().String(),
			)
		}

		if !a.memory.CreatedAt().Equal(b.memory.CreatedAt()) {
			return a.memory.CreatedAt().After(b.memory.CreatedAt())
		}
		return a.memory.ID().String() < b.memory.ID().String()
	})
}

// hydrate fills page-only fields: comment previews and the caller's own
// reactions.
func (h *GetFeedHandler) hydrate(ctx context.Context, e feedEntry, userID string) (queries.FeedItem, error) {
	m := e.memory

	comments, err := h.commentRepo.FindByMemory(ctx, m.ID())
	if err != nil {
		return queries.FeedItem{}, err
	}
	previews := make([]queries.CommentPreview, 0, h.topComments)
	for _, c := range h.threads.TopComments(comments, h.topComments) {
		previews = append(previews, queries.CommentPreview{
			ID:        c.ID().String(),
			UserID:    c.UserID(),
			Content:   c.Content(),
			CreatedAt: c.CreatedAt(),
		})
	}

	own, err := h.reactionRepo.FindByMemoryAndUser(ctx, m.ID(), userID)
	if err != nil {
		return queries.FeedItem{}, err
	}
	userReactions := make([]queries.ReactionView, 0, len(own))
	for _, r := range own {
		userReactions = append(userReactions, queries.ReactionView{
			ID:        r.ID().String(),
			MemoryID:  r.MemoryID().String(),
			UserID:    r.UserID(),
			Emoji:     r.Emoji().String(),
			CreatedAt: r.CreatedAt(),
		})
	}

	return queries.FeedItem{
		ID:               m.ID().String(),
		UserID:           m.UserID(),
		FamilyUnitID:     m.FamilyUnitID(),
		Title:            m.Title(),
		Description:      m.Description(),
		MemoryDate:       m.MemoryDate(),
		Location:         m.Location(),
		Tags:             m.Tags(),
		Status:           string(m.Status()),
		CreatedAt:        m.CreatedAt(),
		UpdatedAt:        m.UpdatedAt(),
		FeedScore:        e.score,
		ReactionCount:    e.snap.ReactionCount,
		CommentCount:     e.snap.CommentCount,
		UniqueReactors:   e.snap.UniqueReactors,
		ReactionsByEmoji: e.snap.ReactionsByEmoji,
		TopComments:      previews,
		UserReactions:    userReactions,
	}, nil
}

// timeoutOr maps deadline expiry to a timeout error, passing other errors
// through.
func timeoutOr(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return pkgerrors.NewTimeoutError("feed assembly timed out")
	}
	return err
}
