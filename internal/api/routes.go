package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scrumbot/pokerbot/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, h *CommandHandler, slackTokens []string, logger *slog.Logger) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	cmd := r.Group("/")
	cmd.Use(middleware.RequestID(), middleware.VerifySlackToken(slackTokens, logger))
	{
		cmd.POST("/poker", h.Handle)
	}
}
