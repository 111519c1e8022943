package models

import "errors"

var (
	ErrNotConfigured   = errors.New("channel has no scale configured")
	ErrNoActiveSession = errors.New("no active voting session")
	ErrNoVotes         = errors.New("no votes recorded")
	ErrUnknownScale    = errors.New("unknown scale")
	ErrUnknownToken    = errors.New("token not in scale")
	ErrInvalidVote     = errors.New("vote outside configured scale")
	ErrMissingArgument = errors.New("missing argument")
)
