package services

import (
	"sort"

	"keepsake-backend/domain/config"
	"keepsake-backend/domain/core/entities"
)

// CommentThread is one node of a materialized comment tree
type CommentThread struct {
	Comment    *entities.Comment
	ReplyCount int
	Replies    []*CommentThread
}

// ThreadBuilder materializes flat comment rows into nested threads.
// Deleted comments stay in the tree as tombstones so their replies keep
// their place.
type ThreadBuilder struct {
	maxDepth int
}

// NewThreadBuilder creates a ThreadBuilder
func NewThreadBuilder(cfg config.DomainConfig) *ThreadBuilder {
	return &ThreadBuilder{maxDepth: cfg.MaxNestingDepth}
}

// Build assembles the reply tree for a memory's comments. Top-level
// comments are ordered by creation time ascending, replies likewise
// within their parent. limit bounds top-level comments only; 0 means no
// limit. Replies whose parent is missing from the input are dropped.
func (b *ThreadBuilder) Build(comments []*entities.Comment, limit int) []*CommentThread {
	nodes := make(map[string]*CommentThread, len(comments))
	children := make(map[string][]*entities.Comment)
	var topLevel []*entities.Comment

	for _, c := range comments {
		nodes[c.ID().String()] = &CommentThread{Comment: c}
		if parentID := c.ParentCommentID(); parentID != nil {
			key := parentID.String()
			children[key] = append(children[key], c)
		} else {
			topLevel = append(topLevel, c)
		}
	}

	sortByCreation(topLevel)
	for _, siblings := range children {
		sortByCreation(siblings)
	}

	if limit > 0 && len(topLevel) > limit {
		topLevel = topLevel[:limit]
	}

	roots := make([]*CommentThread, 0, len(topLevel))
	queue := make([]*CommentThread, 0, len(topLevel))
	for _, c := range topLevel {
		node := nodes[c.ID().String()]
		roots = append(roots, node)
		queue = append(queue, node)
	}

	// Iterative breadth-first walk. The depth bound is defensive: rows
	// deeper than the domain allows are ignored rather than looping.
	depth := 0
	for len(queue) > 0 && depth < b.maxDepth {
		var next []*CommentThread
		for _, node := range queue {
			for _, reply := range children[node.Comment.ID().String()] {
				child := nodes[reply.ID().String()]
				node.Replies = append(node.Replies, child)
				next = append(next, child)
			}
			node.ReplyCount = len(node.Replies)
		}
		queue = next
		depth++
	}

	return roots
}

// TopComments returns up to n of the oldest non-deleted top-level
// comments, for feed previews.
func (b *ThreadBuilder) TopComments(comments []*entities.Comment, n int) []*entities.Comment {
	var topLevel []*entities.Comment
	for _, c := range comments {
		if c.IsTopLevel() && !c.IsDeleted() {
			topLevel = append(topLevel, c)
		}
	}
	sortByCreation(topLevel)
	if len(topLevel) > n {
		topLevel = topLevel[:n]
	}
	return topLevel
}

func sortByCreation(comments []*entities.Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		if !comments[i].CreatedAt().Equal(comments[j].CreatedAt()) {
			return comments[i].CreatedAt().Before(comments[j].CreatedAt())
		}
		return comments[i].ID().String() < comments[j].ID().String()
	})
}
