package api

import (
	"net/http"
	"strings"

	"github.com/example/snackmarket/pkg/market"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const identityKey = "identity"

// Headers set by the upstream authentication proxy after it has verified
// the session. The core performs no credential checks of its own.
const (
	headerUserEmail = "X-User-Email"
	headerUserName  = "X-User-Name"
)

// identityMiddleware resolves the verified caller into a market.Identity,
// creating the resident profile on first sight. Administrator status comes
// from comparing the verified email against the configured admin address.
func (s *Server) identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetHeader(headerUserEmail)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := s.users.GetOrCreate(c.Request.Context(), email, c.GetHeader(headerUserName))
		if err != nil {
			s.logger.Error("Failed to resolve user", zap.String("email", email), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}

		c.Set(identityKey, market.Identity{
			UserID:  user.ID,
			Name:    user.Name,
			Email:   user.Email,
			Role:    user.Role,
			IsAdmin: s.isAdmin(user.Email),
		})
		c.Next()
	}
}

func (s *Server) isAdmin(email string) bool {
	admin := s.config.Admin.Email
	return admin != "" && strings.EqualFold(email, admin)
}

func identityFrom(c *gin.Context) market.Identity {
	id, _ := c.Get(identityKey)
	actor, _ := id.(market.Identity)
	return actor
}
