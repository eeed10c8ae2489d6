package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"keepsake-backend/application/commands/bus"
	querybus "keepsake-backend/application/queries/bus"
	"keepsake-backend/infrastructure/config"
	"keepsake-backend/interfaces/http/rest/handlers"
	"keepsake-backend/interfaces/http/rest/middleware"
	v1 "keepsake-backend/interfaces/http/rest/v1"
	"keepsake-backend/pkg/auth"
	pkgerrors "keepsake-backend/pkg/errors"
	"keepsake-backend/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg         *config.Config
	commandBus  *bus.CommandBus
	queryBus    *querybus.QueryBus
	validator   *auth.JWTValidator
	ipLimiter   auth.RateLimiter
	userLimiter auth.RateLimiter
	errors      *pkgerrors.HTTPHandler
	metrics     *observability.Metrics
	tracer      *observability.Tracer
	logger      *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (*Router, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		// Config validation rejects a missing secret in production
		secret = "development-secret-change-in-production"
	}
	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: secret,
		Issuer:    cfg.JWTIssuer,
	})
	if err != nil {
		return nil, err
	}

	return &Router{
		cfg:         cfg,
		commandBus:  commandBus,
		queryBus:    queryBus,
		validator:   validator,
		ipLimiter:   auth.NewIPRateLimiter(cfg.IPRateLimit),
		userLimiter: auth.NewUserRateLimiter(cfg.UserRateLimit),
		errors:      pkgerrors.NewHTTPHandler(logger),
		metrics:     metrics,
		tracer:      tracer,
		logger:      logger,
	}, nil
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(versionMiddleware)
	if rt.cfg.EnableMetrics && rt.metrics != nil {
		router.Use(middleware.Observe(rt.metrics, rt.tracer))
	}

	// CORS configuration
	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.keepsake.family"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API v1 routes (legacy - redirects to v2)
	router.Mount("/api/v1", v1.NewRouter())

	// API v2 routes (current)
	router.Route("/api/v2", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.ipLimiter, rt.userLimiter, rt.logger))

		// Memory endpoints
		r.Route("/memories", func(r chi.Router) {
			memoryHandler := handlers.NewMemoryHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
			r.Post("/", memoryHandler.CreateMemory)
			r.Get("/{memoryID}", memoryHandler.GetMemory)
			r.Put("/{memoryID}", memoryHandler.UpdateMemory)
			r.Delete("/{memoryID}", memoryHandler.ArchiveMemory)

			reactionHandler := handlers.NewReactionHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
			r.Post("/{memoryID}/reactions", reactionHandler.CreateReaction)
			r.Get("/{memoryID}/reactions", reactionHandler.ListReactions)

			commentHandler := handlers.NewCommentHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
			r.Post("/{memoryID}/comments", commentHandler.CreateComment)
			r.Get("/{memoryID}/comments", commentHandler.GetComments)
		})

		// Reaction endpoints addressed by reaction ID
		r.Route("/reactions", func(r chi.Router) {
			reactionHandler := handlers.NewReactionHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
			r.Delete("/{reactionID}", reactionHandler.DeleteReaction)
		})

		// Comment endpoints addressed by comment ID
		r.Route("/comments", func(r chi.Router) {
			commentHandler := handlers.NewCommentHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
			r.Put("/{commentID}", commentHandler.UpdateComment)
			r.Delete("/{commentID}", commentHandler.DeleteComment)
		})

		// Ranked family feed
		r.Get("/feed", handlers.NewFeedHandler(rt.queryBus, rt.errors, rt.logger).GetFeed)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

// versionMiddleware adds API version headers
func versionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-API-Version", "v2")
		next.ServeHTTP(w, r)
	})
}
