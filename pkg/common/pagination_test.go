package common

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPaginationParams(t *testing.T) {
	t.Run("defaults when absent", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/feed", nil)

		params, err := ExtractPaginationParams(r)
		require.NoError(t, err)
		assert.Equal(t, 1, params.Page)
		assert.Equal(t, DefaultPageSize, params.PageSize)
	})

	t.Run("reads query values", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/feed?page=3&page_size=50", nil)

		params, err := ExtractPaginationParams(r)
		require.NoError(t, err)
		assert.Equal(t, 3, params.Page)
		assert.Equal(t, 50, params.PageSize)
	})

	t.Run("rejects non-numeric values", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/feed?page=abc", nil)

		_, err := ExtractPaginationParams(r)
		assert.Error(t, err)
	})
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, PaginationParams{Page: 1, PageSize: 20}.CalculateOffset())
	assert.Equal(t, 20, PaginationParams{Page: 2, PageSize: 20}.CalculateOffset())
	assert.Equal(t, 90, PaginationParams{Page: 10, PageSize: 10}.CalculateOffset())
}

func TestBuildPaginationMeta(t *testing.T) {
	t.Run("partial last page rounds up", func(t *testing.T) {
		meta := BuildPaginationMeta(1, 20, 45)

		assert.Equal(t, 3, meta.TotalPages)
		assert.True(t, meta.HasMore)
		assert.False(t, meta.HasPrev)
	})

	t.Run("last page has no more", func(t *testing.T) {
		meta := BuildPaginationMeta(3, 20, 45)

		assert.False(t, meta.HasMore)
		assert.True(t, meta.HasPrev)
	})

	t.Run("empty result set", func(t *testing.T) {
		meta := BuildPaginationMeta(1, 20, 0)

		assert.Equal(t, 0, meta.TotalPages)
		assert.False(t, meta.HasMore)
	})
}
