package middleware

import (
	"strings"

	"github.com/biulino/ai-summary-plugin/internal/pkg/jwt"
	"github.com/biulino/ai-summary-plugin/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const ContextKeySubject = "auth_subject"

// Auth returns a middleware that enforces bearer JWT authentication.
func Auth(signer *jwt.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := signer.Parse(extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeySubject, claims.Subject)
		c.Next()
	}
}

// Subject extracts the authenticated subject from context.
func Subject(c *gin.Context) string {
	if v, ok := c.Get(ContextKeySubject); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return strings.TrimSpace(c.Query("token"))
}
