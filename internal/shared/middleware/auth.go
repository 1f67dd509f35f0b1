package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"articles-backend/internal/shared/response"
	"articles-backend/pkg/jwt"
)

// ActorKey is the context key holding the authenticated owner's ID.
const ActorKey = "ownerID"

// Auth validates the Bearer token and puts the owner ID into the
// request context. Item mutations use it to enforce ownership.
func Auth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := manager.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		ownerID, err := uuid.Parse(claims.OwnerID)
		if err != nil {
			response.Unauthorized(c, "invalid owner ID in token")
			c.Abort()
			return
		}

		c.Set(ActorKey, ownerID)
		c.Next()
	}
}

// Actor returns the authenticated owner ID from the context.
func Actor(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ActorKey)
	if !ok {
		return uuid.Nil, false
	}

	id, ok := v.(uuid.UUID)
	return id, ok
}

// AbortUnauthenticated is a helper for handlers that require an actor.
func AbortUnauthenticated(c *gin.Context) {
	response.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	c.Abort()
}
