package middleware

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"keepsake-backend/pkg/auth"
	"keepsake-backend/pkg/common"
)

// Authenticate validates the caller and installs a UserContext carrying
// the (user, family unit, role) triple every handler depends on. Two
// paths are accepted: a Bearer token validated locally, or trusted
// headers set by the API Gateway JWT authorizer in the Lambda deployment.
func Authenticate(validator *auth.JWTValidator, ipLimiter, userLimiter auth.RateLimiter, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)

			allowed, err := ipLimiter.Allow(r.Context(), clientIP)
			if err != nil {
				logger.Error("Rate limiter error", zap.Error(err))
				common.RespondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
				return
			}
			if !allowed {
				common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Rate limit exceeded")
				return
			}

			userCtx, err := resolveUser(r, validator)
			if err != nil {
				logger.Warn("Authentication failed",
					zap.Error(err),
					zap.String("ip", clientIP),
					zap.String("path", r.URL.Path),
				)
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", unauthorizedMessage(err))
				return
			}

			allowed, err = userLimiter.Allow(r.Context(), userCtx.UserID)
			if err != nil {
				logger.Error("User rate limiter error", zap.Error(err))
				common.RespondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
				return
			}
			if !allowed {
				common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "User rate limit exceeded")
				return
			}

			ctx := auth.SetUserInContext(r.Context(), userCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

var errMissingToken = errors.New("missing authentication token")

// resolveUser builds the user context from the request
func resolveUser(r *http.Request, validator *auth.JWTValidator) (*auth.UserContext, error) {
	// API Gateway already validated the JWT in the Lambda deployment and
	// forwards the claims as headers.
	if r.Header.Get("X-API-Gateway-Authorized") == "true" {
		userID := r.Header.Get("X-User-ID")
		familyUnitID := r.Header.Get("X-Family-Unit-ID")
		if userID == "" || familyUnitID == "" {
			return nil, errors.New("missing user context from API Gateway")
		}
		return &auth.UserContext{
			UserID:       userID,
			FamilyUnitID: familyUnitID,
			Role:         auth.Role(r.Header.Get("X-User-Role")),
		}, nil
	}

	token := extractToken(r)
	if token == "" {
		return nil, errMissingToken
	}

	claims, err := validator.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	return &auth.UserContext{
		UserID:       claims.UserID,
		FamilyUnitID: claims.FamilyUnitID,
		Role:         auth.Role(claims.Role),
	}, nil
}

func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, auth.ErrInvalidSignature):
		return "Invalid token signature"
	case errors.Is(err, errMissingToken):
		return "Missing authentication token"
	default:
		return "Invalid token"
	}
}

// extractToken extracts the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return authHeader
}

// getClientIP extracts the client IP address
func getClientIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}

	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
