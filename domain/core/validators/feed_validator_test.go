package validators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keepsake-backend/domain/feed"
	pkgerrors "keepsake-backend/pkg/errors"
)

func TestFeedValidatorValidateFilter(t *testing.T) {
	v := NewFeedValidator()

	t.Run("fills defaults in place", func(t *testing.T) {
		f := feed.Filter{}

		require.NoError(t, v.ValidateFilter(&f))

		assert.Equal(t, "published", f.Status)
		assert.Equal(t, feed.OrderByFeedScore, f.OrderBy)
		assert.Equal(t, feed.DirectionDesc, f.Direction)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		f := feed.Filter{Status: "archived", OrderBy: feed.OrderByMemoryDate, Direction: feed.DirectionAsc}

		require.NoError(t, v.ValidateFilter(&f))

		assert.Equal(t, "archived", f.Status)
		assert.Equal(t, feed.OrderByMemoryDate, f.OrderBy)
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		cases := []feed.Filter{
			{Status: "shouting"},
			{OrderBy: "popularity"},
			{Direction: "sideways"},
		}
		for _, f := range cases {
			f := f
			err := v.ValidateFilter(&f)
			assert.True(t, pkgerrors.HasCode(err, "INVALID_FILTER"))
		}
	})

	t.Run("rejects an inverted date range", func(t *testing.T) {
		from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, -1, 0)
		f := feed.Filter{MemoryDateFrom: &from, MemoryDateTo: &to}

		err := v.ValidateFilter(&f)
		assert.True(t, pkgerrors.HasCode(err, "INVALID_FILTER"))
	})
}

func TestFeedValidatorValidatePagination(t *testing.T) {
	v := NewFeedValidator()

	assert.NoError(t, v.ValidatePagination(1, 20))
	assert.NoError(t, v.ValidatePagination(1, 100))

	assert.Error(t, v.ValidatePagination(0, 20))
	assert.Error(t, v.ValidatePagination(1, 0))
	assert.Error(t, v.ValidatePagination(1, 101))
}
