package feed

import "time"

// Sort fields accepted by the feed query
const (
	OrderByFeedScore  = "feed_score"
	OrderByCreatedAt  = "created_at"
	OrderByMemoryDate = "memory_date"
)

// Sort directions
const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// Filter narrows the feed to a subset of a family's memories. Zero values
// mean "no constraint"; Status defaults to published upstream.
type Filter struct {
	Status         string
	UserID         string
	Tags           []string
	MemoryDateFrom *time.Time
	MemoryDateTo   *time.Time
	Search         string
	OrderBy        string
	Direction      string
}

// ValidOrderBy reports whether s is an accepted sort field
func ValidOrderBy(s string) bool {
	switch s {
	case OrderByFeedScore, OrderByCreatedAt, OrderByMemoryDate:
		return true
	}
	return false
}

// ValidDirection reports whether s is an accepted sort direction
func ValidDirection(s string) bool {
	return s == DirectionAsc || s == DirectionDesc
}
