package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"uchef/internal/domain"
)

const userCtxKey = "uchef.user"

// authMiddleware resolves the bearer token to a user and stores it on the
// request context.
func authMiddleware(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}

		u, err := users.LookupByToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		c.Set(userCtxKey, u)
		c.Next()
	}
}

// optionalAuth resolves the bearer token when one is sent but lets the
// request through anonymously otherwise. Used on public listings whose
// result widens for admins.
func optionalAuth(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if ok && strings.TrimSpace(token) != "" {
			if u, err := users.LookupByToken(c.Request.Context(), strings.TrimSpace(token)); err == nil {
				c.Set(userCtxKey, u)
			}
		}
		c.Next()
	}
}

// requireRole gates a route to one role. Admins pass every gate.
func requireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
		if u.Role != role && u.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "insufficient role"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userCtxKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
