package models

import "time"

// ChannelKey identifies one channel inside one Slack workspace. Every
// store operation is keyed by it.
type ChannelKey struct {
	TeamID    string
	ChannelID string
}

func (k ChannelKey) String() string {
	return k.TeamID + "|" + k.ChannelID
}

// ChannelConfig holds the per-channel setup. Written by "setup",
// last write wins.
type ChannelConfig struct {
	Scale string `mapstructure:"scale"`
}

// Vote is one user's recorded estimate.
type Vote struct {
	Name string `json:"name"`
	Size string `json:"size"`
}

// VotingSession is one round of voting for a single ticket. Only the
// most recent session per channel is addressable; older ones stay in
// storage but are never queried again.
type VotingSession struct {
	ID        string          `mapstructure:"-"`
	Ticket    string          `mapstructure:"ticket"`
	CreatedAt time.Time       `mapstructure:"-"`
	Votes     map[string]Vote `mapstructure:"-"`
}

// CommandRequest is the parsed slash-command form body.
type CommandRequest struct {
	TeamID      string
	TeamDomain  string
	ChannelID   string
	ChannelName string
	UserID      string
	UserName    string
	Command     string
	Text        string
	ResponseURL string
}
