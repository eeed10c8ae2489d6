package entities

import (
	"strings"
	"time"

	"keepsake-backend/domain/config"
	"keepsake-backend/domain/core/valueobjects"
	"keepsake-backend/domain/events"
	pkgerrors "keepsake-backend/pkg/errors"
)

// MemoryStatus is the lifecycle state of a memory
type MemoryStatus string

const (
	MemoryStatusDraft     MemoryStatus = "draft"
	MemoryStatusPublished MemoryStatus = "published"
	MemoryStatusArchived  MemoryStatus = "archived"
)

// ValidMemoryStatus reports whether s is a known status
func ValidMemoryStatus(s string) bool {
	switch MemoryStatus(s) {
	case MemoryStatusDraft, MemoryStatusPublished, MemoryStatusArchived:
		return true
	}
	return false
}

// Memory is a shared family moment: a titled post with an optional
// description, location, tags, and the calendar date the moment happened.
// Only published memories appear in the feed.
type Memory struct {
	id           valueobjects.MemoryID
	userID       string
	familyUnitID string
	title        string
	description  string
	memoryDate   time.Time
	location     string
	tags         []string
	status       MemoryStatus
	createdAt    time.Time
	updatedAt    time.Time
	modifiedBy   string

	uncommittedEvents []events.DomainEvent
}

// NewMemory creates a memory. Publish immediately by passing
// MemoryStatusPublished, otherwise it starts as a draft.
func NewMemory(id valueobjects.MemoryID, userID, familyUnitID, title, description string, memoryDate time.Time, location string, tags []string, status MemoryStatus) (*Memory, error) {
	cfg := config.DefaultDomainConfig()

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, pkgerrors.NewValidationError("title cannot be empty")
	}
	if len([]rune(title)) > cfg.MaxTitleLength {
		return nil, pkgerrors.NewValidationError("title exceeds maximum length")
	}
	if len([]rune(description)) > cfg.MaxDescriptionLength {
		return nil, pkgerrors.NewValidationError("description exceeds maximum length")
	}
	if len(tags) > cfg.MaxTagsPerMemory {
		return nil, pkgerrors.NewValidationError("too many tags")
	}
	if status == "" {
		status = MemoryStatusDraft
	}
	if status != MemoryStatusDraft && status != MemoryStatusPublished {
		return nil, pkgerrors.NewValidationError("new memories must be draft or published")
	}

	if id.IsEmpty() {
		id = valueobjects.NewMemoryID()
	}

	now := time.Now().UTC()
	m := &Memory{
		id:           id,
		userID:       userID,
		familyUnitID: familyUnitID,
		title:        title,
		description:  strings.TrimSpace(description),
		memoryDate:   memoryDate,
		location:     strings.TrimSpace(location),
		tags:         normalizeTags(tags),
		status:       status,
		createdAt:    now,
		updatedAt:    now,
		modifiedBy:   userID,
	}
	m.addEvent(events.NewMemoryCreated(m.id, userID, familyUnitID, string(status), m.tags, now))
	return m, nil
}

// ReconstructMemory rebuilds a memory from stored state without validation
// or events.
func ReconstructMemory(id valueobjects.MemoryID, userID, familyUnitID, title, description string, memoryDate time.Time, location string, tags []string, status MemoryStatus, createdAt, updatedAt time.Time, modifiedBy string) *Memory {
	return &Memory{
		id:           id,
		userID:       userID,
		familyUnitID: familyUnitID,
		title:        title,
		description:  description,
		memoryDate:   memoryDate,
		location:     location,
		tags:         tags,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		modifiedBy:   modifiedBy,
	}
}

func (m *Memory) ID() valueobjects.MemoryID { return m.id }
func (m *Memory) UserID() string            { return m.userID }
func (m *Memory) FamilyUnitID() string      { return m.familyUnitID }
func (m *Memory) Title() string             { return m.title }
func (m *Memory) Description() string       { return m.description }
func (m *Memory) MemoryDate() time.Time     { return m.memoryDate }
func (m *Memory) Location() string          { return m.location }
func (m *Memory) Status() MemoryStatus      { return m.status }
func (m *Memory) CreatedAt() time.Time      { return m.createdAt }
func (m *Memory) UpdatedAt() time.Time      { return m.updatedAt }
func (m *Memory) ModifiedBy() string        { return m.modifiedBy }

// Tags returns a copy of the tag list
func (m *Memory) Tags() []string {
	out := make([]string, len(m.tags))
	copy(out, m.tags)
	return out
}

// IsOwnedBy reports whether userID created this memory
func (m *Memory) IsOwnedBy(userID string) bool {
	return m.userID == userID
}

// BelongsToFamily reports whether the memory is in the given family unit
func (m *Memory) BelongsToFamily(familyUnitID string) bool {
	return m.familyUnitID == familyUnitID
}

// IsVisible reports whether the memory should appear in the feed
func (m *Memory) IsVisible() bool {
	return m.status == MemoryStatusPublished
}

// Publish moves a draft memory into the feed. Publishing an archived
// memory is not allowed.
func (m *Memory) Publish(userID string) error {
	if m.status == MemoryStatusPublished {
		return nil
	}
	if m.status == MemoryStatusArchived {
		return pkgerrors.NewValidationError("archived memories cannot be published")
	}
	now := time.Now().UTC()
	m.status = MemoryStatusPublished
	m.updatedAt = now
	m.modifiedBy = userID
	m.addEvent(events.NewMemoryPublished(m.id, userID, m.familyUnitID, now))
	return nil
}

// Archive soft-removes the memory from the feed. Archiving is idempotent.
func (m *Memory) Archive(userID string) {
	if m.status == MemoryStatusArchived {
		return
	}
	now := time.Now().UTC()
	m.status = MemoryStatusArchived
	m.updatedAt = now
	m.modifiedBy = userID
	m.addEvent(events.NewMemoryArchived(m.id, userID, m.familyUnitID, now))
}

// UpdateDetails replaces the mutable fields of the memory
func (m *Memory) UpdateDetails(userID, title, description string, memoryDate time.Time, location string, tags []string) error {
	cfg := config.DefaultDomainConfig()

	title = strings.TrimSpace(title)
	if title == "" {
		return pkgerrors.NewValidationError("title cannot be empty")
	}
	if len([]rune(title)) > cfg.MaxTitleLength {
		return pkgerrors.NewValidationError("title exceeds maximum length")
	}
	if len([]rune(description)) > cfg.MaxDescriptionLength {
		return pkgerrors.NewValidationError("description exceeds maximum length")
	}
	if len(tags) > cfg.MaxTagsPerMemory {
		return pkgerrors.NewValidationError("too many tags")
	}

	now := time.Now().UTC()
	m.title = title
	m.description = strings.TrimSpace(description)
	m.memoryDate = memoryDate
	m.location = strings.TrimSpace(location)
	m.tags = normalizeTags(tags)
	m.updatedAt = now
	m.modifiedBy = userID
	m.addEvent(events.NewMemoryUpdated(m.id, userID, m.familyUnitID, now))
	return nil
}

// GetUncommittedEvents returns events raised since the last clear
func (m *Memory) GetUncommittedEvents() []events.DomainEvent {
	return m.uncommittedEvents
}

// ClearEvents discards the uncommitted event list
func (m *Memory) ClearEvents() {
	m.uncommittedEvents = nil
}

func (m *Memory) addEvent(e events.DomainEvent) {
	m.uncommittedEvents = append(m.uncommittedEvents, e)
}

// normalizeTags lowercases, trims, and deduplicates tags preserving first
// occurrence order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
