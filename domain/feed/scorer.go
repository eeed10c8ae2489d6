// Package feed implements relevance scoring for the family feed.
// Scores blend recency with engagement so fresh posts surface first while
// well-loved older posts stay discoverable.
package feed

import (
	"math"
	"time"
)

// Scoring weights and bounds. Both components are normalized to [0, 1]
// before blending, so the final score is also in [0, 1].
const (
	timeWeight       = 0.6
	engagementWeight = 0.4

	reactionWeight = 1.0
	commentWeight  = 2.0

	// engagementCap normalizes the log-scaled engagement term. A memory
	// reaches full engagement score at weighted activity of 99.
	engagementCap = 2.0
)

// Recency buckets in hours with their scores. Anything older than the
// last bucket scores recencyFloor.
const (
	bucketDayHours   = 24.0
	bucketWeekHours  = 168.0
	bucketMonthHours = 720.0

	recencyDay   = 1.0
	recencyWeek  = 0.7
	recencyMonth = 0.4
	recencyFloor = 0.2
)

// Engagement is the raw activity counters used for scoring
type Engagement struct {
	ReactionCount  int
	CommentCount   int
	UniqueReactors int
}

// TimeScore maps the age of a memory to a recency bucket score. Ages that
// come out negative from clock skew clamp to the freshest bucket.
func TimeScore(now, createdAt time.Time) float64 {
	ageHours := now.Sub(createdAt).Hours()
	switch {
	case ageHours <= bucketDayHours:
		return recencyDay
	case ageHours <= bucketWeekHours:
		return recencyWeek
	case ageHours <= bucketMonthHours:
		return recencyMonth
	default:
		return recencyFloor
	}
}

// EngagementScore maps activity counters to [0, 1] on a log scale so a
// handful of reactions matters but a pile-on saturates. Zero activity
// scores exactly zero.
func EngagementScore(e Engagement) float64 {
	weighted := float64(e.ReactionCount)*reactionWeight + float64(e.CommentCount)*commentWeight
	if weighted == 0 {
		return 0
	}
	return math.Min(math.Log10(1+weighted)/engagementCap, 1.0)
}

// Score computes the blended feed score for a memory
func Score(now, createdAt time.Time, e Engagement) float64 {
	return timeWeight*TimeScore(now, createdAt) + engagementWeight*EngagementScore(e)
}

// Less orders feed entries for ranking: higher score first, then newer
// created_at, then ascending ID so the order is total and stable across
// requests.
func Less(scoreA float64, createdA time.Time, idA string, scoreB float64, createdB time.Time, idB string) bool {
	if scoreA != scoreB {
		return scoreA > scoreB
	}
	if !createdA.Equal(createdB) {
		return createdA.After(createdB)
	}
	return idA < idB
}
