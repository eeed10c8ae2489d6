// Package di wires the application together. Providers are consumed by
// wire; the generated initializer lives in wire_gen.go.
package di

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"keepsake-backend/application/commands"
	"keepsake-backend/application/commands/bus"
	commandhandlers "keepsake-backend/application/commands/handlers"
	"keepsake-backend/application/ports"
	"keepsake-backend/application/queries"
	querybus "keepsake-backend/application/queries/bus"
	queryhandlers "keepsake-backend/application/queries/handlers"
	"keepsake-backend/application/services"
	domainconfig "keepsake-backend/domain/config"
	"keepsake-backend/domain/core/validators"
	"keepsake-backend/infrastructure/config"
	"keepsake-backend/infrastructure/messaging/eventbridge"
	"keepsake-backend/infrastructure/persistence/dynamodb"
	"keepsake-backend/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideMetrics creates the CloudWatch metrics sink
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	namespace := fmt.Sprintf("Keepsake/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer() *observability.Tracer {
	return observability.NewTracer("keepsake-backend")
}

// ProvideDomainConfig returns the domain limits
func ProvideDomainConfig() domainconfig.DomainConfig {
	return domainconfig.DefaultDomainConfig()
}

// ProvideMemoryRepository creates a memory repository
func ProvideMemoryRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.MemoryRepository {
	return dynamodb.NewMemoryRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvideCommentRepository creates a comment repository
func ProvideCommentRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.CommentRepository {
	return dynamodb.NewCommentRepository(client, cfg.DynamoDBTable, cfg.GSI2IndexName, logger)
}

// ProvideReactionRepository creates a reaction repository
func ProvideReactionRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ReactionRepository {
	return dynamodb.NewReactionRepository(client, cfg.DynamoDBTable, cfg.GSI2IndexName, logger)
}

// ProvideEventPublisher creates the analytics event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideAnalyticsEmitter creates the fire-and-forget analytics emitter
func ProvideAnalyticsEmitter(publisher ports.EventPublisher, logger *zap.Logger) *services.AnalyticsEmitter {
	return services.NewAnalyticsEmitter(publisher, logger)
}

// ProvideEngagementService creates the engagement aggregation service
func ProvideEngagementService(reactionRepo ports.ReactionRepository, commentRepo ports.CommentRepository) *services.EngagementService {
	return services.NewEngagementService(reactionRepo, commentRepo)
}

// ProvideThreadBuilder creates the comment thread builder
func ProvideThreadBuilder(domainCfg domainconfig.DomainConfig) *services.ThreadBuilder {
	return services.NewThreadBuilder(domainCfg)
}

// ProvideFeedValidator creates the feed filter validator
func ProvideFeedValidator() *validators.FeedValidator {
	return validators.NewFeedValidator()
}

// ProvideInMemoryCache creates a simple in-memory cache.
// In production this would be Redis or similar.
func ProvideInMemoryCache() ports.Cache {
	return NewInMemoryCache()
}

// ProvideCommandBus creates a command bus with all handlers registered
func ProvideCommandBus(
	memoryRepo ports.MemoryRepository,
	commentRepo ports.CommentRepository,
	reactionRepo ports.ReactionRepository,
	analytics *services.AnalyticsEmitter,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus()

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.CreateMemoryCommand{}, commandhandlers.NewCreateMemoryHandler(memoryRepo, analytics, logger)},
		{commands.UpdateMemoryCommand{}, commandhandlers.NewUpdateMemoryHandler(memoryRepo, analytics, logger)},
		{commands.ArchiveMemoryCommand{}, commandhandlers.NewArchiveMemoryHandler(memoryRepo, analytics, logger)},
		{commands.CreateReactionCommand{}, commandhandlers.NewCreateReactionHandler(memoryRepo, reactionRepo, analytics, logger)},
		{commands.DeleteReactionCommand{}, commandhandlers.NewDeleteReactionHandler(reactionRepo, analytics, logger)},
		{commands.CreateCommentCommand{}, commandhandlers.NewCreateCommentHandler(memoryRepo, commentRepo, analytics, logger)},
		{commands.UpdateCommentCommand{}, commandhandlers.NewUpdateCommentHandler(commentRepo, analytics, logger)},
		{commands.DeleteCommentCommand{}, commandhandlers.NewDeleteCommentHandler(commentRepo, analytics, logger)},
	}

	for _, r := range registrations {
		if err := commandBus.Register(r.cmd, r.handler); err != nil {
			return nil, err
		}
	}

	return commandBus, nil
}

// memoryDetailTTL bounds how stale a cached memory detail view can get.
const memoryDetailTTL = 10 * time.Second

// ProvideQueryBus creates a query bus with all handlers registered.
// The memory detail view is read-through cached; the feed is scored
// per request and never cached.
func ProvideQueryBus(
	cfg *config.Config,
	memoryRepo ports.MemoryRepository,
	commentRepo ports.CommentRepository,
	reactionRepo ports.ReactionRepository,
	engagement *services.EngagementService,
	threads *services.ThreadBuilder,
	feedValidator *validators.FeedValidator,
	cache ports.Cache,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()
	caching := querybus.NewCachingMiddleware(cache, memoryDetailTTL)

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.GetFeedQuery{}, queryhandlers.NewGetFeedHandler(
			memoryRepo, reactionRepo, commentRepo, engagement, threads,
			feedValidator, cfg.TopCommentCount, cfg.FeedTimeout, logger,
		)},
		{queries.GetCommentsQuery{}, queryhandlers.NewGetCommentsHandler(memoryRepo, commentRepo, threads, logger)},
		{queries.ListReactionsQuery{}, queryhandlers.NewListReactionsHandler(memoryRepo, reactionRepo, logger)},
		{queries.GetMemoryQuery{}, caching.Wrap(queryhandlers.NewGetMemoryHandler(memoryRepo, engagement, logger))},
	}

	for _, r := range registrations {
		if err := queryBus.Register(r.query, r.handler); err != nil {
			return nil, err
		}
	}

	return queryBus, nil
}
