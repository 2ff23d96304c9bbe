package main

import (
	"strings"

	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/auth"
	"github.com/gin-gonic/gin"
)

// IdentityMiddleware extracts the caller email from a Bearer token when one is
// supplied. Identity is optional: requests without a valid token fall back to
// the email query parameter handled in the handler layer.
func (app *application) IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if app.Config.JWT.Secret == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) != 2 || fields[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := auth.ParseToken(app.Config.JWT.Secret, fields[1])
		if err != nil {
			app.Logger.Sugar().Warnw("invalid bearer token", "error", err)
			c.Next()
			return
		}

		c.Set("email", strings.ToLower(claims.Email))
		c.Next()
	}
}
