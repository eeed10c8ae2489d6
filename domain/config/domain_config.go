package config

// DomainConfig holds tunable business rules. Entities and services read
// the production values via DefaultDomainConfig.
type DomainConfig struct {
	// MaxNestingDepth is the deepest comment level allowed. Root comments
	// are depth 0, so a value of 3 permits reply chains four comments long.
	MaxNestingDepth int

	// MaxCommentLength bounds comment content after trimming.
	MaxCommentLength int

	// TopCommentsPerFeedItem is how many top-level comments a feed item carries.
	TopCommentsPerFeedItem int

	// MaxTitleLength bounds memory titles.
	MaxTitleLength int

	// MaxDescriptionLength bounds memory descriptions.
	MaxDescriptionLength int

	// MaxTagsPerMemory bounds the tag set on a memory.
	MaxTagsPerMemory int
}

// DefaultDomainConfig returns the production business rules
func DefaultDomainConfig() DomainConfig {
	return DomainConfig{
		MaxNestingDepth:        3,
		MaxCommentLength:       5000,
		TopCommentsPerFeedItem: 3,
		MaxTitleLength:         200,
		MaxDescriptionLength:   10000,
		MaxTagsPerMemory:       20,
	}
}
