// Package engine is the planning-poker state machine. Per channel the
// game moves through setup -> deal -> vote (repeatable) -> reveal, and
// a new deal starts the next round. All state lives in the store; the
// engine itself keeps nothing between requests.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/slack-go/slack"

	"github.com/scrumbot/pokerbot/internal/messages"
	"github.com/scrumbot/pokerbot/internal/models"
	"github.com/scrumbot/pokerbot/internal/scales"
)

const notifyTimeout = 5 * time.Second

// Store is the durable session storage the engine drives, keyed by
// (team, channel).
type Store interface {
	SetConfig(ctx context.Context, key models.ChannelKey, scaleID string) error
	GetConfig(ctx context.Context, key models.ChannelKey) (models.ChannelConfig, error)
	StartSession(ctx context.Context, key models.ChannelKey, ticket string) error
	CurrentSession(ctx context.Context, key models.ChannelKey) (*models.VotingSession, error)
	RecordVote(ctx context.Context, key models.ChannelKey, userID, name, size string) (changed bool, err error)
	CurrentVotes(ctx context.Context, key models.ChannelKey) (map[string]models.Vote, error)
}

// Notifier delivers delayed broadcast messages out of band.
type Notifier interface {
	Notify(ctx context.Context, url string, msg *slack.Msg) error
}

type Engine struct {
	store    Store
	scales   *scales.Registry
	notifier Notifier
	logger   *slog.Logger
}

func New(store Store, reg *scales.Registry, notifier Notifier, logger *slog.Logger) *Engine {
	return &Engine{store: store, scales: reg, notifier: notifier, logger: logger}
}

// Setup configures the channel's scale. Re-running setup mid-game
// leaves the active session and its votes untouched.
func (e *Engine) Setup(ctx context.Context, key models.ChannelKey, scaleID string) (*slack.Msg, error) {
	if _, err := e.scales.Resolve(scaleID); err != nil {
		return nil, err
	}
	if err := e.store.SetConfig(ctx, key, scaleID); err != nil {
		return nil, err
	}
	return messages.Ephemeral("Size has been set for channel."), nil
}

// Deal starts a new voting round for ticket, superseding any previous
// session for the channel.
func (e *Engine) Deal(ctx context.Context, key models.ChannelKey, ticket string) (*slack.Msg, error) {
	if ticket == "" {
		return nil, models.ErrMissingArgument
	}
	cfg, err := e.store.GetConfig(ctx, key)
	if err != nil {
		return nil, err
	}
	def, err := e.scales.Resolve(cfg.Scale)
	if err != nil {
		return nil, err
	}
	if err := e.store.StartSession(ctx, key, ticket); err != nil {
		return nil, err
	}

	msg := messages.InChannel(fmt.Sprintf("*The planning poker game has started* for: %s", ticket))
	messages.AddAttachment(msg, "Vote by typing */poker vote <size>*.", "", def.Composite, false)
	return msg, nil
}

// Vote records or changes the user's estimate for the current round.
// A first-time vote additionally announces "<name> voted" to the
// channel through the delayed-response URL; that announcement is best
// effort and never affects the command's own outcome.
func (e *Engine) Vote(ctx context.Context, key models.ChannelKey, userID, userName, size, responseURL string) (*slack.Msg, error) {
	cfg, err := e.store.GetConfig(ctx, key)
	if err != nil {
		return nil, err
	}
	if _, err := e.store.CurrentSession(ctx, key); err != nil {
		return nil, err
	}
	if size == "" {
		return nil, models.ErrMissingArgument
	}
	if !e.scales.IsValidToken(cfg.Scale, size) {
		return nil, models.ErrInvalidVote
	}

	changed, err := e.store.RecordVote(ctx, key, userID, userName, size)
	if err != nil {
		return nil, err
	}
	if changed {
		return messages.Ephemeral(fmt.Sprintf("You changed your vote to *%s*.", size)), nil
	}

	e.announceVote(userName, responseURL)
	return messages.Ephemeral(fmt.Sprintf("You voted *%s*.", size)), nil
}

func (e *Engine) announceVote(userName, responseURL string) {
	if e.notifier == nil || responseURL == "" {
		return
	}
	msg := messages.InChannel(fmt.Sprintf("%s voted", userName))
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := e.notifier.Notify(ctx, responseURL, msg); err != nil {
			e.logger.Warn("vote announcement not delivered", "user", userName, "error", err)
		}
	}()
}

// Tally reports who has voted so far, names only, never the sizes.
func (e *Engine) Tally(ctx context.Context, key models.ChannelKey) (*slack.Msg, error) {
	votes, err := e.store.CurrentVotes(ctx, key)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(votes))
	for _, v := range votes {
		names = append(names, v.Name)
	}

	switch len(names) {
	case 0:
		return messages.InChannel("No one has voted yet."), nil
	case 1:
		return messages.InChannel(fmt.Sprintf("%s has voted.", names[0])), nil
	default:
		sort.Strings(names)
		return messages.InChannel(fmt.Sprintf("%s have voted.", strings.Join(names, ", "))), nil
	}
}

// Reveal groups the current votes by size and reports consensus when
// exactly one distinct size was chosen, otherwise one thumbnail per
// size with the names behind it.
func (e *Engine) Reveal(ctx context.Context, key models.ChannelKey) (*slack.Msg, error) {
	votes, err := e.store.CurrentVotes(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(votes) == 0 {
		return nil, models.ErrNoVotes
	}
	cfg, err := e.store.GetConfig(ctx, key)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]string)
	for _, v := range votes {
		groups[v.Size] = append(groups[v.Size], v.Name)
	}

	if len(groups) == 1 {
		for size := range groups {
			// A stale vote from before a mid-game re-setup may have no
			// artwork in the current scale; the message still goes out.
			art, _ := e.scales.ArtifactFor(cfg.Scale, size)
			msg := messages.InChannel("*Congratulations!*")
			messages.AddAttachment(msg, "Everyone selected the same number.", messages.ColorGood, art, false)
			return msg, nil
		}
	}

	msg := messages.InChannel("*No winner yet.* Discuss and continue voting.")
	for size, names := range groups {
		art, _ := e.scales.ArtifactFor(cfg.Scale, size)
		messages.AddAttachment(msg, strings.Join(names, ", "), messages.ColorWarning, art, true)
	}
	return msg, nil
}
