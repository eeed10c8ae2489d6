package entities

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
)

func newTestComment(t *testing.T, parent *Comment) *Comment {
	t.Helper()
	c, err := NewComment(valueobjects.CommentID{}, testMemoryID(t), "user-1", "family-1", "hello there", parent)
	require.NoError(t, err)
	return c
}

func testMemoryID(t *testing.T) valueobjects.MemoryID {
	t.Helper()
	return valueobjects.NewMemoryID()
}

func TestNewComment(t *testing.T) {
	t.Run("top-level comment starts at depth zero", func(t *testing.T) {
		c := newTestComment(t, nil)

		assert.Equal(t, 0, c.Depth())
		assert.True(t, c.IsTopLevel())
		assert.Nil(t, c.ParentCommentID())
		assert.Equal(t, "hello there", c.Content())
		assert.False(t, c.IsDeleted())
	})

	t.Run("content is trimmed", func(t *testing.T) {
		memoryID := testMemoryID(t)
		c, err := NewComment(valueobjects.CommentID{}, memoryID, "user-1", "family-1", "  spaced out  ", nil)
		require.NoError(t, err)
		assert.Equal(t, "spaced out", c.Content())
	})

	t.Run("whitespace-only content is rejected", func(t *testing.T) {
		memoryID := testMemoryID(t)
		_, err := NewComment(valueobjects.CommentID{}, memoryID, "user-1", "family-1", "   \n\t  ", nil)
		assert.True(t, pkgerrors.HasCode(err, "INVALID_CONTENT"))
	})

	t.Run("content over the limit is rejected", func(t *testing.T) {
		memoryID := testMemoryID(t)
		_, err := NewComment(valueobjects.CommentID{}, memoryID, "user-1", "family-1", strings.Repeat("a", 5001), nil)
		assert.True(t, pkgerrors.HasCode(err, "INVALID_CONTENT"))
	})

	t.Run("content exactly at the limit is accepted", func(t *testing.T) {
		memoryID := testMemoryID(t)
		_, err := NewComment(valueobjects.CommentID{}, memoryID, "user-1", "family-1", strings.Repeat("a", 5000), nil)
		assert.NoError(t, err)
	})

	t.Run("reply depth increments from parent", func(t *testing.T) {
		top := newTestComment(t, nil)
		reply, err := NewComment(valueobjects.CommentID{}, top.MemoryID(), "user-2", "family-1", "a reply", top)
		require.NoError(t, err)

		assert.Equal(t, 1, reply.Depth())
		assert.False(t, reply.IsTopLevel())
		require.NotNil(t, reply.ParentCommentID())
		assert.Equal(t, top.ID().String(), reply.ParentCommentID().String())
	})

	t.Run("nesting beyond the maximum depth is rejected", func(t *testing.T) {
		current := newTestComment(t, nil)
		memoryID := current.MemoryID()

		// Depths 1, 2, 3 are allowed.
		for i := 0; i < 3; i++ {
			next, err := NewComment(valueobjects.CommentID{}, memoryID, "user-1", "family-1", "nested", current)
			require.NoError(t, err)
			current = next
		}
		assert.Equal(t, 3, current.Depth())

		_, err := NewComment(valueobjects.CommentID{}, memoryID, "user-1", "family-1", "too deep", current)
		assert.True(t, pkgerrors.HasCode(err, "NESTING_DEPTH_EXCEEDED"))
	})

	t.Run("parent from another memory behaves as not found", func(t *testing.T) {
		top := newTestComment(t, nil)
		otherMemory := testMemoryID(t)

		_, err := NewComment(valueobjects.CommentID{}, otherMemory, "user-1", "family-1", "cross post", top)
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("replying to a tombstoned parent is allowed", func(t *testing.T) {
		top := newTestComment(t, nil)
		require.NoError(t, top.SoftDelete("user-1", false))

		reply, err := NewComment(valueobjects.CommentID{}, top.MemoryID(), "user-2", "family-1", "late reply", top)
		require.NoError(t, err)
		assert.Equal(t, 1, reply.Depth())
	})

	t.Run("provided id is kept", func(t *testing.T) {
		id := valueobjects.NewCommentID()
		c, err := NewComment(id, testMemoryID(t), "user-1", "family-1", "hi", nil)
		require.NoError(t, err)
		assert.Equal(t, id.String(), c.ID().String())
	})
}

func TestCommentUpdateContent(t *testing.T) {
	t.Run("author can edit", func(t *testing.T) {
		c := newTestComment(t, nil)

		err := c.UpdateContent("user-1", "edited text")
		require.NoError(t, err)
		assert.Equal(t, "edited text", c.Content())
	})

	t.Run("non-author cannot edit", func(t *testing.T) {
		c := newTestComment(t, nil)

		err := c.UpdateContent("user-2", "hijacked")
		assert.True(t, pkgerrors.IsForbidden(err))
		assert.Equal(t, "hello there", c.Content())
	})

	t.Run("editing a deleted comment behaves as not found", func(t *testing.T) {
		c := newTestComment(t, nil)
		require.NoError(t, c.SoftDelete("user-1", false))

		err := c.UpdateContent("user-1", "resurrection")
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("invalid replacement content is rejected", func(t *testing.T) {
		c := newTestComment(t, nil)

		err := c.UpdateContent("user-1", "   ")
		assert.True(t, pkgerrors.HasCode(err, "INVALID_CONTENT"))
		assert.Equal(t, "hello there", c.Content())
	})
}

func TestCommentSoftDelete(t *testing.T) {
	t.Run("author can delete", func(t *testing.T) {
		c := newTestComment(t, nil)

		require.NoError(t, c.SoftDelete("user-1", false))
		assert.True(t, c.IsDeleted())
		assert.Equal(t, "", c.Content())
	})

	t.Run("moderator can delete someone else's comment", func(t *testing.T) {
		c := newTestComment(t, nil)

		require.NoError(t, c.SoftDelete("adult-user", true))
		assert.True(t, c.IsDeleted())
	})

	t.Run("non-author without moderation rights cannot delete", func(t *testing.T) {
		c := newTestComment(t, nil)

		err := c.SoftDelete("user-2", false)
		assert.True(t, pkgerrors.IsForbidden(err))
		assert.False(t, c.IsDeleted())
	})

	t.Run("deleting twice is a no-op", func(t *testing.T) {
		c := newTestComment(t, nil)
		require.NoError(t, c.SoftDelete("user-1", false))
		c.ClearEvents()

		require.NoError(t, c.SoftDelete("user-1", false))
		assert.Empty(t, c.GetUncommittedEvents())
	})
}

func TestCommentEvents(t *testing.T) {
	c := newTestComment(t, nil)

	evts := c.GetUncommittedEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, "comment_created", evts[0].GetEventType())
	assert.Equal(t, c.ID().String(), evts[0].GetAggregateID())

	c.ClearEvents()
	assert.Empty(t, c.GetUncommittedEvents())

	require.NoError(t, c.UpdateContent("user-1", "new text"))
	require.NoError(t, c.SoftDelete("user-1", false))

	evts = c.GetUncommittedEvents()
	require.Len(t, evts, 2)
	assert.Equal(t, "comment_updated", evts[0].GetEventType())
	assert.Equal(t, "comment_deleted", evts[1].GetEventType())
}
