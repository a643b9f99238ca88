package middleware

import (
	"strings"

	"blogapi/internal/repository"
	"blogapi/internal/service"
	"blogapi/internal/util"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// Auth resolves the caller to a Principal and stores it in the gin context.
// Requests without a token proceed as guests; the services decide what a
// guest may do. A present but invalid token is rejected outright.
func Auth(users repository.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Set(principalKey, service.Guest())
			c.Next()
			return
		}

		claims, err := util.ValidateToken(token, jwtSecret)
		if err != nil {
			util.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil {
			util.ErrorResponse(c, 500, "Failed to load user", nil)
			c.Abort()
			return
		}
		if user == nil {
			util.Unauthorized(c, "Unknown user")
			c.Abort()
			return
		}

		c.Set(principalKey, service.NewPrincipal(user))
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// PrincipalFrom extracts the principal the Auth middleware stored. The
// guest principal comes back when the middleware did not run.
func PrincipalFrom(c *gin.Context) service.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(service.Principal); ok {
			return p
		}
	}
	return service.Guest()
}
