// Package api parses inbound slash commands and routes them to the
// voting engine. Precondition failures come back as private guidance
// messages with HTTP 200; Slack renders anything non-200 as a raw
// error to the user.
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"

	"github.com/scrumbot/pokerbot/internal/engine"
	"github.com/scrumbot/pokerbot/internal/messages"
	"github.com/scrumbot/pokerbot/internal/middleware"
	"github.com/scrumbot/pokerbot/internal/models"
)

const helpText = "Pokerbot helps you play Agile/Scrum poker planning.\n\n" +
	"Use the following commands:\n" +
	" /poker setup [f, s, t, m]\n" +
	" /poker deal <ticket>\n" +
	" /poker vote <size>\n" +
	" /poker tally\n" +
	" /poker reveal"

type CommandHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewCommandHandler(eng *engine.Engine, logger *slog.Logger) *CommandHandler {
	return &CommandHandler{engine: eng, logger: logger}
}

func (h *CommandHandler) Handle(c *gin.Context) {
	req, err := parseCommand(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	key := models.ChannelKey{TeamID: req.TeamID, ChannelID: req.ChannelID}
	logger := h.logger.With(
		"request_id", c.GetString(middleware.RequestIDKey),
		"channel", key.String(),
		"user", req.UserID,
	)

	if strings.TrimSpace(req.Text) == "" {
		respond(c, messages.Ephemeral("Type */poker help* for pokerbot commands."))
		return
	}
	args := strings.Fields(req.Text)
	sub := args[0]
	logger.Info("command received", "subcommand", sub)

	ctx := c.Request.Context()
	var msg *slack.Msg
	switch sub {
	case "setup":
		if len(args) < 2 {
			respond(c, messages.Ephemeral("You must enter a size format </poker setup [f, s, t, m]."))
			return
		}
		msg, err = h.engine.Setup(ctx, key, args[1])
	case "deal":
		ticket := ""
		if len(args) >= 2 {
			ticket = args[1]
		}
		msg, err = h.engine.Deal(ctx, key, ticket)
	case "vote":
		size := ""
		if len(args) >= 2 {
			size = args[1]
		}
		msg, err = h.engine.Vote(ctx, key, req.UserID, req.UserName, size, req.ResponseURL)
	case "tally":
		msg, err = h.engine.Tally(ctx, key)
	case "reveal":
		msg, err = h.engine.Reveal(ctx, key)
	case "help":
		respond(c, messages.Ephemeral(helpText))
		return
	default:
		respond(c, messages.Ephemeral("Invalid command. Type */poker help* for pokerbot commands."))
		return
	}

	if err != nil {
		respond(c, guidanceFor(sub, err, logger))
		return
	}
	respond(c, msg)
}

func respond(c *gin.Context, msg *slack.Msg) {
	c.JSON(http.StatusOK, msg)
}

// guidanceFor maps a domain error to the private message explaining
// which precondition failed. Anything unrecognized is treated as a
// transient storage problem: logged, and reported without detail.
func guidanceFor(sub string, err error, logger *slog.Logger) *slack.Msg {
	switch {
	case errors.Is(err, models.ErrNotConfigured):
		return messages.Ephemeral("This channel has no size format yet. Run */poker setup [f, s, t, m]* first.")
	case errors.Is(err, models.ErrUnknownScale):
		return messages.Ephemeral("Your choices are f, s, t or m in format /poker setup <choice>.")
	case errors.Is(err, models.ErrNoActiveSession):
		return messages.Ephemeral("The poker planning game hasn't started yet.")
	case errors.Is(err, models.ErrNoVotes):
		return messages.Ephemeral("No one has voted yet. There is nothing to reveal.")
	case errors.Is(err, models.ErrInvalidVote):
		return messages.Ephemeral("Your vote was not counted. Please enter a valid poker planning size.")
	case errors.Is(err, models.ErrMissingArgument):
		if sub == "deal" {
			return messages.Ephemeral("You did not enter a JIRA ticket number.")
		}
		return messages.Ephemeral("Your vote was not counted. You didn't enter a size.")
	default:
		logger.Error("command failed", "subcommand", sub, "error", err)
		return messages.Ephemeral("Something went wrong talking to storage. Please try again.")
	}
}

func parseCommand(c *gin.Context) (*models.CommandRequest, error) {
	req := &models.CommandRequest{
		TeamID:      c.PostForm("team_id"),
		TeamDomain:  c.PostForm("team_domain"),
		ChannelID:   c.PostForm("channel_id"),
		ChannelName: c.PostForm("channel_name"),
		UserID:      c.PostForm("user_id"),
		UserName:    c.PostForm("user_name"),
		Command:     c.PostForm("command"),
		Text:        c.PostForm("text"),
		ResponseURL: c.PostForm("response_url"),
	}
	for field, val := range map[string]string{
		"team_id":      req.TeamID,
		"team_domain":  req.TeamDomain,
		"channel_id":   req.ChannelID,
		"channel_name": req.ChannelName,
		"user_id":      req.UserID,
		"user_name":    req.UserName,
		"command":      req.Command,
		"response_url": req.ResponseURL,
	} {
		if val == "" {
			return nil, fmt.Errorf("missing form field %q", field)
		}
	}
	return req, nil
}
