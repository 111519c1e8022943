// Package store persists channel configuration and voting sessions in
// Redis. Layout per (team, channel):
//
//	pokerbot:config:<team>|<channel>        hash {scale}
//	pokerbot:sessions:<team>|<channel>      zset of session ids, scored by creation time
//	pokerbot:session:<team>|<channel>:<id>  hash {ticket, created_at}
//	pokerbot:votes:<team>|<channel>:<id>    hash, field per user id, JSON vote value
//
// The head of the reverse-ordered zset is the current session. Session
// ids are zero-padded unix-nano strings, so when two deals land on the
// same score the lexical member tiebreak picks the greatest id.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/redis/go-redis/v9"

	"github.com/scrumbot/pokerbot/internal/models"
)

const keyPrefix = "pokerbot"

type RedisStore struct {
	rdb    *redis.Client
	logger *slog.Logger
}

func NewRedisStore(rdb *redis.Client, logger *slog.Logger) *RedisStore {
	return &RedisStore{rdb: rdb, logger: logger}
}

func configKey(k models.ChannelKey) string {
	return fmt.Sprintf("%s:config:%s", keyPrefix, k)
}

func indexKey(k models.ChannelKey) string {
	return fmt.Sprintf("%s:sessions:%s", keyPrefix, k)
}

func sessionKey(k models.ChannelKey, id string) string {
	return fmt.Sprintf("%s:session:%s:%s", keyPrefix, k, id)
}

func votesKey(k models.ChannelKey, id string) string {
	return fmt.Sprintf("%s:votes:%s:%s", keyPrefix, k, id)
}

// SetConfig upserts the channel's scale choice. Last write wins.
func (s *RedisStore) SetConfig(ctx context.Context, key models.ChannelKey, scaleID string) error {
	if err := s.rdb.HSet(ctx, configKey(key), "scale", scaleID).Err(); err != nil {
		return fmt.Errorf("set channel config: %w", err)
	}
	return nil
}

func (s *RedisStore) GetConfig(ctx context.Context, key models.ChannelKey) (models.ChannelConfig, error) {
	var cfg models.ChannelConfig
	data, err := s.rdb.HGetAll(ctx, configKey(key)).Result()
	if err != nil {
		return cfg, fmt.Errorf("get channel config: %w", err)
	}
	if err := mapstructure.Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode channel config: %w", err)
	}
	if cfg.Scale == "" {
		return cfg, models.ErrNotConfigured
	}
	return cfg, nil
}

// StartSession creates a fresh session with no votes and makes it the
// channel's current one. The session hash and its index entry are
// written in one transaction so a concurrent vote sees either the old
// complete session or the new one.
func (s *RedisStore) StartSession(ctx context.Context, key models.ChannelKey, ticket string) error {
	now := time.Now()
	id := fmt.Sprintf("%020d", now.UnixNano())

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, sessionKey(key, id), map[string]interface{}{
		"ticket":     ticket,
		"created_at": now.Format(time.RFC3339Nano),
	})
	pipe.ZAdd(ctx, indexKey(key), redis.Z{Score: float64(now.Unix()), Member: id})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	return nil
}

func (s *RedisStore) currentID(ctx context.Context, key models.ChannelKey) (string, error) {
	ids, err := s.rdb.ZRevRange(ctx, indexKey(key), 0, 0).Result()
	if err != nil {
		return "", fmt.Errorf("look up current session: %w", err)
	}
	if len(ids) == 0 {
		return "", models.ErrNoActiveSession
	}
	return ids[0], nil
}

func (s *RedisStore) CurrentSession(ctx context.Context, key models.ChannelKey) (*models.VotingSession, error) {
	id, err := s.currentID(ctx, key)
	if err != nil {
		return nil, err
	}
	data, err := s.rdb.HGetAll(ctx, sessionKey(key, id)).Result()
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if len(data) == 0 {
		return nil, models.ErrNoActiveSession
	}

	sess := &models.VotingSession{ID: id}
	if err := mapstructure.Decode(data, sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, data["created_at"]); err == nil {
		sess.CreatedAt = t
	}
	sess.Votes, err = s.votes(ctx, key, id)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// RecordVote upserts one user's vote in the current session. The
// single-field HSET is the atomic read-modify-write: its return value
// tells us whether the user had voted before.
func (s *RedisStore) RecordVote(ctx context.Context, key models.ChannelKey, userID, name, size string) (bool, error) {
	id, err := s.currentID(ctx, key)
	if err != nil {
		return false, err
	}
	payload, err := json.Marshal(models.Vote{Name: name, Size: size})
	if err != nil {
		return false, fmt.Errorf("marshal vote: %w", err)
	}
	added, err := s.rdb.HSet(ctx, votesKey(key, id), userID, payload).Result()
	if err != nil {
		return false, fmt.Errorf("record vote: %w", err)
	}
	return added == 0, nil
}

func (s *RedisStore) CurrentVotes(ctx context.Context, key models.ChannelKey) (map[string]models.Vote, error) {
	id, err := s.currentID(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.votes(ctx, key, id)
}

func (s *RedisStore) votes(ctx context.Context, key models.ChannelKey, id string) (map[string]models.Vote, error) {
	raw, err := s.rdb.HGetAll(ctx, votesKey(key, id)).Result()
	if err != nil {
		return nil, fmt.Errorf("get votes: %w", err)
	}
	out := make(map[string]models.Vote, len(raw))
	for user, payload := range raw {
		var v models.Vote
		if err := json.Unmarshal([]byte(payload), &v); err != nil {
			s.logger.Warn("skipping undecodable vote entry", "user", user, "error", err)
			continue
		}
		out[user] = v
	}
	return out, nil
}
