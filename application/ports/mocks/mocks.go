// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"keepsake-backend/domain/core/entities"
	"keepsake-backend/domain/core/valueobjects"
	"keepsake-backend/domain/events"
	"keepsake-backend/domain/feed"
)

// MemoryRepository mocks ports.MemoryRepository
type MemoryRepository struct {
	mock.Mock
}

func (m *MemoryRepository) Save(ctx context.Context, memory *entities.Memory) error {
	args := m.Called(ctx, memory)
	return args.Error(0)
}

func (m *MemoryRepository) FindByID(ctx context.Context, id valueobjects.MemoryID) (*entities.Memory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Memory), args.Error(1)
}

func (m *MemoryRepository) FindByFamily(ctx context.Context, familyUnitID string, filter feed.Filter) ([]*entities.Memory, error) {
	args := m.Called(ctx, familyUnitID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Memory), args.Error(1)
}

func (m *MemoryRepository) Update(ctx context.Context, memory *entities.Memory) error {
	args := m.Called(ctx, memory)
	return args.Error(0)
}

// CommentRepository mocks ports.CommentRepository
type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Save(ctx context.Context, comment *entities.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) FindByID(ctx context.Context, id valueobjects.CommentID) (*entities.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Comment), args.Error(1)
}

func (m *CommentRepository) FindByMemory(ctx context.Context, memoryID valueobjects.MemoryID) ([]*entities.Comment, error) {
	args := m.Called(ctx, memoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Comment), args.Error(1)
}

func (m *CommentRepository) Update(ctx context.Context, comment *entities.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) CountActiveByMemory(ctx context.Context, memoryID valueobjects.MemoryID) (int, error) {
	args := m.Called(ctx, memoryID)
	return args.Int(0), args.Error(1)
}

// ReactionRepository mocks ports.ReactionRepository
type ReactionRepository struct {
	mock.Mock
}

func (m *ReactionRepository) Save(ctx context.Context, reaction *entities.Reaction) error {
	args := m.Called(ctx, reaction)
	return args.Error(0)
}

func (m *ReactionRepository) FindByID(ctx context.Context, id valueobjects.ReactionID) (*entities.Reaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Reaction), args.Error(1)
}

func (m *ReactionRepository) FindByMemory(ctx context.Context, memoryID valueobjects.MemoryID) ([]*entities.Reaction, error) {
	args := m.Called(ctx, memoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Reaction), args.Error(1)
}

func (m *ReactionRepository) FindByMemoryAndUser(ctx context.Context, memoryID valueobjects.MemoryID, userID string) ([]*entities.Reaction, error) {
	args := m.Called(ctx, memoryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Reaction), args.Error(1)
}

func (m *ReactionRepository) Delete(ctx context.Context, reaction *entities.Reaction) error {
	args := m.Called(ctx, reaction)
	return args.Error(0)
}

// EventPublisher mocks ports.EventPublisher
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	args := m.Called(ctx, evts)
	return args.Error(0)
}

// Cache mocks ports.Cache
type Cache struct {
	mock.Mock
}

func (m *Cache) Get(key string) (interface{}, bool) {
	args := m.Called(key)
	return args.Get(0), args.Bool(1)
}

func (m *Cache) Set(key string, value interface{}, ttl time.Duration) {
	m.Called(key, value, ttl)
}

func (m *Cache) Delete(key string) {
	m.Called(key)
}
