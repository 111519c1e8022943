package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scrumbot/pokerbot/config"
	"github.com/scrumbot/pokerbot/internal/api"
	"github.com/scrumbot/pokerbot/internal/engine"
	"github.com/scrumbot/pokerbot/internal/messages"
	"github.com/scrumbot/pokerbot/internal/redisclient"
	"github.com/scrumbot/pokerbot/internal/scales"
	"github.com/scrumbot/pokerbot/internal/store"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadApp()
	logger := slog.Default()

	if len(cfg.SlackTokens) == 0 {
		logger.Error("SLACK_TOKENS is not set")
		os.Exit(1)
	}

	rdb, err := redisclient.New(cfg.RedisURI, cfg.RedisPassword)
	if err != nil {
		logger.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	logger.Info("redis connected", "addr", cfg.RedisURI)

	registry := scales.NewRegistry(cfg.ImageLocation)
	sessions := store.NewRedisStore(rdb, logger)
	notifier := messages.NewResponseNotifier(5 * time.Second)
	eng := engine.New(sessions, registry, notifier, logger)

	r := gin.Default()
	api.RegisterRoutes(r, api.NewCommandHandler(eng, logger), cfg.SlackTokens, logger)

	logger.Info("listening", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
