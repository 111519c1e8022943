// Package testutil provides an in-memory session store fake so the
// engine and HTTP layer can be tested without a running Redis.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/scrumbot/pokerbot/internal/models"
)

type memSession struct {
	id     string
	ticket string
	votes  map[string]models.Vote
}

// MemStore mirrors the Redis store's semantics: last deal wins, vote
// upsert per user, sessions survive being superseded.
type MemStore struct {
	mu       sync.Mutex
	configs  map[models.ChannelKey]models.ChannelConfig
	sessions map[models.ChannelKey][]*memSession
	seq      int

	// FailWith, when set, makes every operation return that error.
	FailWith error
}

func NewMemStore() *MemStore {
	return &MemStore{
		configs:  make(map[models.ChannelKey]models.ChannelConfig),
		sessions: make(map[models.ChannelKey][]*memSession),
	}
}

func (s *MemStore) SetConfig(_ context.Context, key models.ChannelKey, scaleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.configs[key] = models.ChannelConfig{Scale: scaleID}
	return nil
}

func (s *MemStore) GetConfig(_ context.Context, key models.ChannelKey) (models.ChannelConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return models.ChannelConfig{}, s.FailWith
	}
	cfg, ok := s.configs[key]
	if !ok {
		return models.ChannelConfig{}, models.ErrNotConfigured
	}
	return cfg, nil
}

func (s *MemStore) StartSession(_ context.Context, key models.ChannelKey, ticket string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.seq++
	s.sessions[key] = append(s.sessions[key], &memSession{
		id:     fmt.Sprintf("%020d", s.seq),
		ticket: ticket,
		votes:  make(map[string]models.Vote),
	})
	return nil
}

func (s *MemStore) CurrentSession(_ context.Context, key models.ChannelKey) (*models.VotingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	cur, err := s.current(key)
	if err != nil {
		return nil, err
	}
	return &models.VotingSession{
		ID:     cur.id,
		Ticket: cur.ticket,
		Votes:  copyVotes(cur.votes),
	}, nil
}

func (s *MemStore) RecordVote(_ context.Context, key models.ChannelKey, userID, name, size string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return false, s.FailWith
	}
	cur, err := s.current(key)
	if err != nil {
		return false, err
	}
	_, changed := cur.votes[userID]
	cur.votes[userID] = models.Vote{Name: name, Size: size}
	return changed, nil
}

func (s *MemStore) CurrentVotes(_ context.Context, key models.ChannelKey) (map[string]models.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	cur, err := s.current(key)
	if err != nil {
		return nil, err
	}
	return copyVotes(cur.votes), nil
}

// SessionCount reports how many sessions were ever started for the
// channel, superseded ones included.
func (s *MemStore) SessionCount(key models.ChannelKey) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions[key])
}

func (s *MemStore) current(key models.ChannelKey) (*memSession, error) {
	all := s.sessions[key]
	if len(all) == 0 {
		return nil, models.ErrNoActiveSession
	}
	return all[len(all)-1], nil
}

func copyVotes(in map[string]models.Vote) map[string]models.Vote {
	out := make(map[string]models.Vote, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
