package entities

import (
	"time"

	"keepsake-backend/domain/config"
	"keepsake-backend/domain/core/valueobjects"
	"keepsake-backend/domain/events"
	pkgerrors "keepsake-backend/pkg/errors"
)

// CommentState tags whether a comment is live or tombstoned
type CommentState string

const (
	CommentStateActive  CommentState = "active"
	CommentStateDeleted CommentState = "deleted"
)

// Comment is a threaded comment on a memory. Depth is materialized at
// creation: top-level comments sit at depth 0 and replies may nest to
// depth MaxNestingDepth. Deleting a comment tombstones it in place so the
// replies underneath stay attached.
type Comment struct {
	id              valueobjects.CommentID
	memoryID        valueobjects.MemoryID
	userID          string
	familyUnitID    string
	parentCommentID *valueobjects.CommentID
	depth           int
	content         valueobjects.CommentContent
	state           CommentState
	createdAt       time.Time
	updatedAt       time.Time

	uncommittedEvents []events.DomainEvent
}

// NewComment creates a top-level comment when parent is nil, or a reply
// otherwise. The parent must belong to the same memory and must not
// already sit at the maximum nesting depth.
func NewComment(id valueobjects.CommentID, memoryID valueobjects.MemoryID, userID, familyUnitID, rawContent string, parent *Comment) (*Comment, error) {
	cfg := config.DefaultDomainConfig()

	content, err := valueobjects.NewCommentContent(rawContent)
	if err != nil {
		return nil, err
	}

	depth := 0
	var parentID *valueobjects.CommentID
	var parentIDStr string
	if parent != nil {
		// A parent under another memory is indistinguishable from a missing
		// parent to the caller.
		if !parent.memoryID.Equals(memoryID) {
			return nil, pkgerrors.NewNotFoundError("comment not found")
		}
		if parent.depth >= cfg.MaxNestingDepth {
			return nil, pkgerrors.NewNestingDepthError(cfg.MaxNestingDepth)
		}
		depth = parent.depth + 1
		pid := parent.id
		parentID = &pid
		parentIDStr = pid.String()
	}

	if id.IsEmpty() {
		id = valueobjects.NewCommentID()
	}

	now := time.Now().UTC()
	c := &Comment{
		id:              id,
		memoryID:        memoryID,
		userID:          userID,
		familyUnitID:    familyUnitID,
		parentCommentID: parentID,
		depth:           depth,
		content:         content,
		state:           CommentStateActive,
		createdAt:       now,
		updatedAt:       now,
	}
	c.addEvent(events.NewCommentCreated(c.id, memoryID, userID, familyUnitID, parentIDStr, depth, now))
	return c, nil
}

// ReconstructComment rebuilds a comment from stored state without
// validation or events.
func ReconstructComment(id valueobjects.CommentID, memoryID valueobjects.MemoryID, userID, familyUnitID string, parentCommentID *valueobjects.CommentID, depth int, content valueobjects.CommentContent, state CommentState, createdAt, updatedAt time.Time) *Comment {
	return &Comment{
		id:              id,
		memoryID:        memoryID,
		userID:          userID,
		familyUnitID:    familyUnitID,
		parentCommentID: parentCommentID,
		depth:           depth,
		content:         content,
		state:           state,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (c *Comment) ID() valueobjects.CommentID       { return c.id }
func (c *Comment) MemoryID() valueobjects.MemoryID  { return c.memoryID }
func (c *Comment) UserID() string                   { return c.userID }
func (c *Comment) FamilyUnitID() string             { return c.familyUnitID }
func (c *Comment) Depth() int                       { return c.depth }
func (c *Comment) State() CommentState              { return c.state }
func (c *Comment) CreatedAt() time.Time             { return c.createdAt }
func (c *Comment) UpdatedAt() time.Time             { return c.updatedAt }

// ParentCommentID returns the parent ID, or nil for top-level comments
func (c *Comment) ParentCommentID() *valueobjects.CommentID {
	if c.parentCommentID == nil {
		return nil
	}
	pid := *c.parentCommentID
	return &pid
}

// Content returns the comment text. Deleted comments return empty content;
// callers render the tombstone placeholder themselves.
func (c *Comment) Content() string {
	if c.state == CommentStateDeleted {
		return ""
	}
	return c.content.String()
}

// IsDeleted reports whether the comment has been tombstoned
func (c *Comment) IsDeleted() bool {
	return c.state == CommentStateDeleted
}

// IsTopLevel reports whether the comment has no parent
func (c *Comment) IsTopLevel() bool {
	return c.parentCommentID == nil
}

// IsAuthoredBy reports whether userID wrote this comment
func (c *Comment) IsAuthoredBy(userID string) bool {
	return c.userID == userID
}

// UpdateContent replaces the comment text. Only the author may edit, and
// a deleted comment behaves as if it no longer exists.
func (c *Comment) UpdateContent(userID, rawContent string) error {
	if c.state == CommentStateDeleted {
		return pkgerrors.NewNotFoundError("comment not found")
	}
	if !c.IsAuthoredBy(userID) {
		return pkgerrors.NewForbiddenError("only the author can edit a comment")
	}
	content, err := valueobjects.NewCommentContent(rawContent)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	c.content = content
	c.updatedAt = now
	c.addEvent(events.NewCommentUpdated(c.id, c.memoryID, userID, c.familyUnitID, now))
	return nil
}

// SoftDelete tombstones the comment. canModerate grants deletion beyond
// authorship; callers compute it from the requester's role. Deleting an
// already deleted comment is a no-op.
func (c *Comment) SoftDelete(userID string, canModerate bool) error {
	if c.state == CommentStateDeleted {
		return nil
	}
	if !c.IsAuthoredBy(userID) && !canModerate {
		return pkgerrors.NewForbiddenError("not allowed to delete this comment")
	}
	now := time.Now().UTC()
	c.state = CommentStateDeleted
	c.updatedAt = now
	c.addEvent(events.NewCommentDeleted(c.id, c.memoryID, userID, c.familyUnitID, now))
	return nil
}

// GetUncommittedEvents returns events raised since the last clear
func (c *Comment) GetUncommittedEvents() []events.DomainEvent {
	return c.uncommittedEvents
}

// ClearEvents discards the uncommitted event list
func (c *Comment) ClearEvents() {
	c.uncommittedEvents = nil
}

func (c *Comment) addEvent(e events.DomainEvent) {
	c.uncommittedEvents = append(c.uncommittedEvents, e)
}
