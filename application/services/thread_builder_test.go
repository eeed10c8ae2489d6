package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keepsake-backend/domain/config"
	"keepsake-backend/domain/core/entities"
	"keepsake-backend/domain/core/valueobjects"
)

var threadBase = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func storedComment(t *testing.T, id string, memoryID valueobjects.MemoryID, parent *valueobjects.CommentID, depth int, offset time.Duration, deleted bool) *entities.Comment {
	t.Helper()

	commentID, err := valueobjects.NewCommentIDFromString(id)
	require.NoError(t, err)

	content, err := valueobjects.NewCommentContent("comment " + id)
	require.NoError(t, err)

	state := entities.CommentStateActive
	if deleted {
		state = entities.CommentStateDeleted
	}

	created := threadBase.Add(offset)
	return entities.ReconstructComment(commentID, memoryID, "user-1", "family-1", parent, depth, content, state, created, created)
}

func idRef(t *testing.T, id string) *valueobjects.CommentID {
	t.Helper()
	parsed, err := valueobjects.NewCommentIDFromString(id)
	require.NoError(t, err)
	return &parsed
}

const (
	idA = "11111111-1111-1111-1111-111111111111"
	idB = "22222222-2222-2222-2222-222222222222"
	idC = "33333333-3333-3333-3333-333333333333"
	idD = "44444444-4444-4444-4444-444444444444"
	idE = "55555555-5555-5555-5555-555555555555"
)

func TestThreadBuilderBuild(t *testing.T) {
	builder := NewThreadBuilder(config.DefaultDomainConfig())
	memoryID := valueobjects.NewMemoryID()

	t.Run("nests replies under their parents", func(t *testing.T) {
		comments := []*entities.Comment{
			storedComment(t, idA, memoryID, nil, 0, 0, false),
			storedComment(t, idB, memoryID, idRef(t, idA), 1, time.Minute, false),
			storedComment(t, idC, memoryID, idRef(t, idB), 2, 2*time.Minute, false),
			storedComment(t, idD, memoryID, idRef(t, idC), 3, 3*time.Minute, false),
		}

		threads := builder.Build(comments, 0)

		require.Len(t, threads, 1)
		root := threads[0]
		assert.Equal(t, idA, root.Comment.ID().String())
		assert.Equal(t, 1, root.ReplyCount)
		require.Len(t, root.Replies, 1)
		require.Len(t, root.Replies[0].Replies, 1)
		require.Len(t, root.Replies[0].Replies[0].Replies, 1)
		assert.Equal(t, idD, root.Replies[0].Replies[0].Replies[0].Comment.ID().String())
	})

	t.Run("orders top-level comments oldest first", func(t *testing.T) {
		comments := []*entities.Comment{
			storedComment(t, idB, memoryID, nil, 0, 2*time.Minute, false),
			storedComment(t, idA, memoryID, nil, 0, time.Minute, false),
			storedComment(t, idC, memoryID, nil, 0, 3*time.Minute, false),
		}

		threads := builder.Build(comments, 0)

		require.Len(t, threads, 3)
		assert.Equal(t, idA, threads[0].Comment.ID().String())
		assert.Equal(t, idB, threads[1].Comment.ID().String())
		assert.Equal(t, idC, threads[2].Comment.ID().String())
	})

	t.Run("ties on creation time break by id", func(t *testing.T) {
		comments := []*entities.Comment{
			storedComment(t, idB, memoryID, nil, 0, 0, false),
			storedComment(t, idA, memoryID, nil, 0, 0, false),
		}

		threads := builder.Build(comments, 0)

		require.Len(t, threads, 2)
		assert.Equal(t, idA, threads[0].Comment.ID().String())
	})

	t.Run("limit bounds top-level comments only", func(t *testing.T) {
		comments := []*entities.Comment{
			storedComment(t, idA, memoryID, nil, 0, 0, false),
			storedComment(t, idB, memoryID, idRef(t, idA), 1, time.Minute, false),
			storedComment(t, idC, memoryID, nil, 0, 2*time.Minute, false),
		}

		threads := builder.Build(comments, 1)

		require.Len(t, threads, 1)
		assert.Equal(t, idA, threads[0].Comment.ID().String())
		assert.Len(t, threads[0].Replies, 1)
	})

	t.Run("tombstones keep their replies attached", func(t *testing.T) {
		comments := []*entities.Comment{
			storedComment(t, idA, memoryID, nil, 0, 0, true),
			storedComment(t, idB, memoryID, idRef(t, idA), 1, time.Minute, false),
		}

		threads := builder.Build(comments, 0)

		require.Len(t, threads, 1)
		assert.True(t, threads[0].Comment.IsDeleted())
		assert.Equal(t, "", threads[0].Comment.Content())
		require.Len(t, threads[0].Replies, 1)
		assert.Equal(t, idB, threads[0].Replies[0].Comment.ID().String())
	})

	t.Run("replies without a parent row are dropped", func(t *testing.T) {
		comments := []*entities.Comment{
			storedComment(t, idA, memoryID, nil, 0, 0, false),
			storedComment(t, idB, memoryID, idRef(t, idE), 1, time.Minute, false),
		}

		threads := builder.Build(comments, 0)

		require.Len(t, threads, 1)
		assert.Empty(t, threads[0].Replies)
	})

	t.Run("empty input yields an empty tree", func(t *testing.T) {
		assert.Empty(t, builder.Build(nil, 0))
	})
}

func TestThreadBuilderTopComments(t *testing.T) {
	builder := NewThreadBuilder(config.DefaultDomainConfig())
	memoryID := valueobjects.NewMemoryID()

	comments := []*entities.Comment{
		storedComment(t, idC, memoryID, nil, 0, 3*time.Minute, false),
		storedComment(t, idA, memoryID, nil, 0, time.Minute, true),
		storedComment(t, idB, memoryID, nil, 0, 2*time.Minute, false),
		storedComment(t, idD, memoryID, idRef(t, idB), 1, 4*time.Minute, false),
	}

	top := builder.TopComments(comments, 3)

	// Deleted and nested comments never appear in previews.
	require.Len(t, top, 2)
	assert.Equal(t, idB, top[0].ID().String())
	assert.Equal(t, idC, top[1].ID().String())

	top = builder.TopComments(comments, 1)
	require.Len(t, top, 1)
	assert.Equal(t, idB, top[0].ID().String())
}
