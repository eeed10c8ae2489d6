package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"keepsake-backend/infrastructure/config"
	"keepsake-backend/infrastructure/di"
	"keepsake-backend/interfaces/http/rest"
)

var (
	// chiLambda wraps the Chi router for AWS Lambda integration
	chiLambda *chiadapter.ChiLambdaV2

	// container holds the dependency injection container
	container *di.Container

	// coldStartTime records when the cold start began
	coldStartTime time.Time
)

// init runs during cold start
func init() {
	coldStartTime = time.Now()
	log.Println("Lambda cold start initiated")

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	router, err := rest.NewRouter(
		cfg,
		container.CommandBus,
		container.QueryBus,
		container.Metrics,
		container.Tracer,
		container.Logger,
	)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	handler := router.Setup()

	chiRouter, ok := handler.(*chi.Mux)
	if !ok {
		log.Fatal("Failed to cast handler to chi.Mux")
	}
	chiLambda = chiadapter.NewV2(chiRouter)

	log.Printf("Lambda cold start completed in %v", time.Since(coldStartTime))
}

// Handler is the Lambda function handler
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	container.Logger.Debug("Lambda received request",
		zap.String("path", req.RequestContext.HTTP.Path),
		zap.String("method", req.RequestContext.HTTP.Method),
		zap.String("request_id", req.RequestContext.RequestID),
	)

	// The API Gateway JWT authorizer has already validated the token when
	// claims are present on the request context. Forward the identity as
	// trusted headers so the service skips a second validation.
	if auth := req.RequestContext.Authorizer; auth != nil && auth.JWT != nil && len(auth.JWT.Claims) > 0 {
		if req.Headers == nil {
			req.Headers = map[string]string{}
		}
		claims := auth.JWT.Claims
		req.Headers["X-API-Gateway-Authorized"] = "true"
		req.Headers["X-User-ID"] = claims["sub"]
		req.Headers["X-Family-Unit-ID"] = claims["family_unit_id"]
		req.Headers["X-User-Role"] = claims["role"]
	}

	return chiLambda.ProxyWithContextV2(ctx, req)
}

func main() {
	lambda.Start(Handler)
}
