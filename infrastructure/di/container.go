package di

import (
	"go.uber.org/zap"

	"keepsake-backend/application/commands/bus"
	"keepsake-backend/application/ports"
	querybus "keepsake-backend/application/queries/bus"
	"keepsake-backend/application/services"
	domainconfig "keepsake-backend/domain/config"
	"keepsake-backend/domain/core/validators"
	"keepsake-backend/infrastructure/config"
	"keepsake-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	DomainConfig  domainconfig.DomainConfig
	MemoryRepo    ports.MemoryRepository
	CommentRepo   ports.CommentRepository
	ReactionRepo  ports.ReactionRepository
	Publisher     ports.EventPublisher
	Analytics     *services.AnalyticsEmitter
	Engagement    *services.EngagementService
	Threads       *services.ThreadBuilder
	FeedValidator *validators.FeedValidator
	CommandBus    *bus.CommandBus
	QueryBus      *querybus.QueryBus
	Cache         ports.Cache
	Metrics       *observability.Metrics
	Tracer        *observability.Tracer
}
