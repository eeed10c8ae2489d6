package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeScore_Buckets(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		age      time.Duration
		expected float64
	}{
		{"one hour old", time.Hour, 1.0},
		{"exactly one day", 24 * time.Hour, 1.0},
		{"two days old", 48 * time.Hour, 0.7},
		{"exactly one week", 168 * time.Hour, 0.7},
		{"two weeks old", 336 * time.Hour, 0.4},
		{"exactly thirty days", 720 * time.Hour, 0.4},
		{"three months old", 2160 * time.Hour, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TimeScore(now, now.Add(-tt.age)))
		})
	}
}

func TestTimeScore_FutureCreatedAtClampsToFreshest(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(5 * time.Minute)

	assert.Equal(t, 1.0, TimeScore(now, created))
}

func TestEngagementScore_ZeroActivityIsZero(t *testing.T) {
	assert.Equal(t, 0.0, EngagementScore(Engagement{}))
}

func TestEngagementScore_MonotonicInActivity(t *testing.T) {
	prev := 0.0
	for reactions := 0; reactions <= 50; reactions += 5 {
		score := EngagementScore(Engagement{ReactionCount: reactions, CommentCount: reactions / 2})
		assert.GreaterOrEqual(t, score, prev)
		prev = score
	}
}

func TestEngagementScore_CommentsWeighMoreThanReactions(t *testing.T) {
	reactionsOnly := EngagementScore(Engagement{ReactionCount: 4})
	commentsOnly := EngagementScore(Engagement{CommentCount: 4})

	assert.Greater(t, commentsOnly, reactionsOnly)
}

func TestEngagementScore_SaturatesAtOne(t *testing.T) {
	score := EngagementScore(Engagement{ReactionCount: 10000, CommentCount: 10000})

	assert.Equal(t, 1.0, score)
}

func TestScore_WorkedExample(t *testing.T) {
	// 1 hour old, 3 reactions, 2 comments:
	// time = 1.0, engagement = log10(8)/2 = 0.45154...
	// score = 0.6*1.0 + 0.4*0.45154 = 0.78062
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(-time.Hour)

	score := Score(now, created, Engagement{ReactionCount: 3, CommentCount: 2})

	assert.InDelta(t, 0.7806, score, 0.0001)
}

func TestScore_AlwaysInUnitInterval(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		age time.Duration
		e   Engagement
	}{
		{0, Engagement{}},
		{time.Hour, Engagement{ReactionCount: 1}},
		{10000 * time.Hour, Engagement{ReactionCount: 99999, CommentCount: 99999}},
		{-time.Hour, Engagement{CommentCount: 3}},
	}

	for _, c := range cases {
		score := Score(now, now.Add(-c.age), c.e)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestScore_FreshBeatsStaleAtEqualEngagement(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := Engagement{ReactionCount: 5, CommentCount: 1}

	fresh := Score(now, now.Add(-2*time.Hour), e)
	stale := Score(now, now.Add(-40*24*time.Hour), e)

	assert.Greater(t, fresh, stale)
}

func TestLess_OrdersByScoreThenRecencyThenID(t *testing.T) {
	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	// higher score wins regardless of age
	assert.True(t, Less(0.9, t1, "b", 0.5, t2, "a"))
	assert.False(t, Less(0.5, t2, "a", 0.9, t1, "b"))

	// equal score: newer created_at wins
	assert.True(t, Less(0.7, t2, "b", 0.7, t1, "a"))
	assert.False(t, Less(0.7, t1, "a", 0.7, t2, "b"))

	// equal score and timestamp: ascending ID
	assert.True(t, Less(0.7, t1, "a", 0.7, t1, "b"))
	assert.False(t, Less(0.7, t1, "b", 0.7, t1, "a"))
}
