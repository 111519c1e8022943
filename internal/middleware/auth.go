package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// VerifySlackToken rejects requests whose form token is not one of the
// configured shared secrets. Accepting a set of tokens lets secrets be
// rotated without downtime. Runs before any command logic.
func VerifySlackToken(tokens []string, logger *slog.Logger) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if t != "" {
			allowed[t] = struct{}{}
		}
	}
	return func(c *gin.Context) {
		token := c.PostForm("token")
		if _, ok := allowed[token]; !ok {
			logger.Error("request token does not match expected",
				"request_id", c.GetString(RequestIDKey))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid request token"})
			return
		}
		c.Next()
	}
}
