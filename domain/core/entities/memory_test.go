package entities

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
)

func newTestMemory(t *testing.T, status MemoryStatus) *Memory {
	t.Helper()
	m, err := NewMemory(valueobjects.MemoryID{}, "user-1", "family-1", "Beach day", "Sandcastles all afternoon", time.Now().AddDate(0, 0, -1), "Brighton", []string{"summer"}, status)
	require.NoError(t, err)
	return m
}

func TestNewMemory(t *testing.T) {
	t.Run("creates a draft by default", func(t *testing.T) {
		m, err := NewMemory(valueobjects.MemoryID{}, "user-1", "family-1", "Beach day", "", time.Now(), "", nil, "")
		require.NoError(t, err)

		assert.Equal(t, MemoryStatusDraft, m.Status())
		assert.False(t, m.IsVisible())
	})

	t.Run("can be published immediately", func(t *testing.T) {
		m := newTestMemory(t, MemoryStatusPublished)
		assert.True(t, m.IsVisible())
	})

	t.Run("cannot be created archived", func(t *testing.T) {
		_, err := NewMemory(valueobjects.MemoryID{}, "user-1", "family-1", "Beach day", "", time.Now(), "", nil, MemoryStatusArchived)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		_, err := NewMemory(valueobjects.MemoryID{}, "user-1", "family-1", "   ", "", time.Now(), "", nil, "")
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("title over the limit is rejected", func(t *testing.T) {
		_, err := NewMemory(valueobjects.MemoryID{}, "user-1", "family-1", strings.Repeat("x", 201), "", time.Now(), "", nil, "")
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("too many tags are rejected", func(t *testing.T) {
		tags := make([]string, 21)
		for i := range tags {
			tags[i] = string(rune('a' + i))
		}
		_, err := NewMemory(valueobjects.MemoryID{}, "user-1", "family-1", "Beach day", "", time.Now(), "", tags, "")
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("tags are normalized and deduplicated", func(t *testing.T) {
		m, err := NewMemory(valueobjects.MemoryID{}, "user-1", "family-1", "Beach day", "", time.Now(), "", []string{" Summer ", "summer", "BEACH", ""}, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"summer", "beach"}, m.Tags())
	})

	t.Run("provided id is kept", func(t *testing.T) {
		id := valueobjects.NewMemoryID()
		m, err := NewMemory(id, "user-1", "family-1", "Beach day", "", time.Now(), "", nil, "")
		require.NoError(t, err)
		assert.Equal(t, id.String(), m.ID().String())
	})

	t.Run("raises a created event", func(t *testing.T) {
		m := newTestMemory(t, MemoryStatusPublished)
		evts := m.GetUncommittedEvents()
		require.Len(t, evts, 1)
		assert.Equal(t, "memory_created", evts[0].GetEventType())
	})
}

func TestMemoryLifecycle(t *testing.T) {
	t.Run("publish moves a draft into the feed", func(t *testing.T) {
		m := newTestMemory(t, MemoryStatusDraft)

		require.NoError(t, m.Publish("user-1"))
		assert.True(t, m.IsVisible())
	})

	t.Run("publish is idempotent", func(t *testing.T) {
		m := newTestMemory(t, MemoryStatusPublished)
		m.ClearEvents()

		require.NoError(t, m.Publish("user-1"))
		assert.Empty(t, m.GetUncommittedEvents())
	})

	t.Run("archived memories cannot be published", func(t *testing.T) {
		m := newTestMemory(t, MemoryStatusPublished)
		m.Archive("user-1")

		err := m.Publish("user-1")
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("archive hides the memory and is idempotent", func(t *testing.T) {
		m := newTestMemory(t, MemoryStatusPublished)

		m.Archive("adult-2")
		assert.Equal(t, MemoryStatusArchived, m.Status())
		assert.False(t, m.IsVisible())
		assert.Equal(t, "adult-2", m.ModifiedBy())

		m.ClearEvents()
		m.Archive("adult-2")
		assert.Empty(t, m.GetUncommittedEvents())
	})
}

func TestMemoryUpdateDetails(t *testing.T) {
	t.Run("replaces mutable fields", func(t *testing.T) {
		m := newTestMemory(t, MemoryStatusPublished)
		newDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

		err := m.UpdateDetails("user-1", "Lake trip", "Canoes and campfires", newDate, "Lake District", []string{"Camping"})
		require.NoError(t, err)

		assert.Equal(t, "Lake trip", m.Title())
		assert.Equal(t, "Canoes and campfires", m.Description())
		assert.Equal(t, newDate, m.MemoryDate())
		assert.Equal(t, "Lake District", m.Location())
		assert.Equal(t, []string{"camping"}, m.Tags())
	})

	t.Run("rejects an empty title", func(t *testing.T) {
		m := newTestMemory(t, MemoryStatusPublished)

		err := m.UpdateDetails("user-1", "", "", time.Now(), "", nil)
		assert.True(t, pkgerrors.IsValidation(err))
		assert.Equal(t, "Beach day", m.Title())
	})
}

func TestMemoryAccess(t *testing.T) {
	m := newTestMemory(t, MemoryStatusPublished)

	assert.True(t, m.IsOwnedBy("user-1"))
	assert.False(t, m.IsOwnedBy("user-2"))
	assert.True(t, m.BelongsToFamily("family-1"))
	assert.False(t, m.BelongsToFamily("family-2"))
}
