package auth

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/devconnect/connect-api/internal/metrics"
	"github.com/devconnect/connect-api/internal/models"
	"github.com/devconnect/connect-api/internal/store"
)

var middlewareTracer = otel.Tracer("auth-middleware")

// TokenCookieName is the cookie carrying the session token
const TokenCookieName = "token"

// Context keys set by RequireAuth for downstream handlers
const (
	// UserKey holds the resolved *models.User
	UserKey = "user"
	// UserIDKey holds the resolved user ID string
	UserIDKey = "user_id"
)

// UserLoader resolves a user ID to the stored account. Satisfied by the
// user store; narrowed to an interface so middleware tests need no database.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// RequireAuth is a gin middleware that gates protected routes. It reads the
// session token from the request cookie, validates it, loads the referenced
// user and attaches it to the context. Any failure short-circuits with 401:
// missing cookie, invalid or expired token, or a token whose user no longer
// exists (deleted after issuance). Every rejection is counted with a coarse
// reason so lockout storms show up on the dashboard.
func RequireAuth(jwtManager *JWTManager, users UserLoader, authMetrics *metrics.AuthMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := middlewareTracer.Start(c.Request.Context(), "auth.require_auth")
		defer span.End()

		token, err := c.Cookie(TokenCookieName)
		if err != nil || token == "" {
			span.SetAttributes(attribute.Bool("auth.token_present", false))
			authMetrics.RecordTokenRejection(ctx, "no_token")
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Message: "Unauthorized: please login first",
				Code:    models.ErrCodeUnauthorized,
			})
			c.Abort()
			return
		}

		span.SetAttributes(attribute.Bool("auth.token_present", true))

		userID, err := jwtManager.ValidateToken(ctx, token)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.Bool("auth.token_valid", false))
			log.Printf(`{"level":"warn","message":"Invalid token","error":"%v"}`, err)
			reason := "invalid_token"
			if errors.Is(err, ErrTokenExpired) {
				reason = "expired_token"
			}
			authMetrics.RecordTokenRejection(ctx, reason)
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Message: "Unauthorized: invalid or expired token",
				Code:    models.ErrCodeUnauthorized,
			})
			c.Abort()
			return
		}

		span.SetAttributes(
			attribute.Bool("auth.token_valid", true),
			attribute.String("user.id", userID),
		)

		user, err := users.GetByID(ctx, userID)
		if err != nil {
			span.RecordError(err)
			// A valid token referencing a deleted user is still a 401,
			// not a 404: the caller holds no usable identity.
			if !errors.Is(err, store.ErrNotFound) {
				log.Printf(`{"level":"error","message":"Failed to load user for token","user_id":"%s","error":"%v"}`, userID, err)
			}
			authMetrics.RecordTokenRejection(ctx, "user_not_found")
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Message: "Unauthorized: user not found",
				Code:    models.ErrCodeUnauthorized,
			})
			c.Abort()
			return
		}

		c.Set(UserKey, user)
		c.Set(UserIDKey, user.ID)

		log.Printf(`{"level":"info","message":"User authenticated","user_id":"%s","path":"%s","method":"%s"}`,
			user.ID, c.Request.URL.Path, c.Request.Method)

		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by RequireAuth
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
