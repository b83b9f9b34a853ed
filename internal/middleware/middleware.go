package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/4lejanddr0/communityevents/internal/helpers"
	"github.com/4lejanddr0/communityevents/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// ErrorHandler provides centralized error handling for errors handlers pushed
// onto the gin context without writing a response themselves.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			c.JSON(http.StatusInternalServerError, gin.H{
				"error":      "Internal server error",
				"request_id": requestID,
			})
		}
	}
}

// RequestTimeout bounds every request context so store round-trips cannot
// hang past the operator-configured deadline. An expired call surfaces as a
// retryable unavailable error, never silent data loss.
func RequestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RateLimiter limits requests per client IP across the API group.
func RateLimiter() gin.HandlerFunc {
	store := memory.NewStore()
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  120,
	}

	instance := limiter.New(store, rate)
	return ginlimiter.NewMiddleware(instance)
}

// AuthMiddleware validates the access token cookie, refreshing it when the
// refresh token still works, and stores enriched claims under "user".
// Requests without a usable identity are rejected with 401.
func AuthMiddleware(userService *services.UserService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := resolveIdentity(c, userService, logger)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized access",
				"error":   "missing or invalid credentials",
			})
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// OptionalAuth resolves the caller's identity when credentials are present
// and continues anonymously when they are not. Browse needs this: an
// unauthenticated caller gets empty "mine" lists, never a 401.
func OptionalAuth(userService *services.UserService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := resolveIdentity(c, userService, logger); ok {
			c.Set("user", claims)
		}
		c.Next()
	}
}

func resolveIdentity(c *gin.Context, userService *services.UserService, logger *slog.Logger) (*helpers.EnhancedClaims, bool) {
	token, err := c.Cookie("access_token")
	if err != nil {
		return nil, false
	}

	claims, err := helpers.ValidateToken(token)
	if err != nil {
		refreshToken, refreshErr := c.Cookie("refresh_token")
		if refreshErr != nil {
			return nil, false
		}

		refreshResponse, refreshErr := userService.RefreshToken(c.Request.Context(), refreshToken)
		if refreshErr != nil {
			logger.Info("Token refresh failed", "error", refreshErr)
			return nil, false
		}

		tokenRes, ok := refreshResponse.(*types.TokenResponse)
		if !ok || tokenRes.AccessToken == "" {
			return nil, false
		}

		isProduction := os.Getenv("GIN_MODE") == "production"
		c.SetCookie("access_token", tokenRes.AccessToken, tokenRes.ExpiresIn, "/", "", isProduction, true)
		c.SetCookie("refresh_token", tokenRes.RefreshToken, 3600*24*30, "/", "", isProduction, true)

		token = tokenRes.AccessToken
		claims, err = helpers.ValidateToken(token)
		if err != nil {
			return nil, false
		}
	}

	enriched := &helpers.EnhancedClaims{
		CustomClaims: claims,
		UserID:       claims.Subject,
		Email:        claims.Email,
	}

	// Profile data is best-effort: a missing profile still leaves a valid
	// identity, just without a display name.
	if userID, parseErr := uuid.Parse(claims.Subject); parseErr == nil {
		if user, profErr := userService.GetUser(c.Request.Context(), userID, token); profErr == nil {
			enriched.Username = user.Username
			enriched.Fullname = user.FullName
			enriched.AvatarURL = user.AvatarURL
		} else {
			logger.Info("Profile not found for token subject",
				"user_id", claims.Subject,
				"error", profErr,
			)
		}
	}

	return enriched, true
}

// CallerClaims pulls the enriched claims a previous auth middleware stored,
// or nil for an anonymous request.
func CallerClaims(c *gin.Context) *helpers.EnhancedClaims {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	claims, ok := value.(*helpers.EnhancedClaims)
	if !ok {
		return nil
	}
	return claims
}
