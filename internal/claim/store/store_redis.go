package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"claimbot/internal/claim"
	"claimbot/pkg/platform/sentinel"
)

// Redis key prefix for in-progress conversation records.
const convKeyPrefix = "claim:conv:"

// RedisStore keeps conversation records in Redis so several bot replicas
// can share them. Records carry a TTL: state stays transient, an abandoned
// wizard evaporates on its own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis constructs a Redis-backed conversation store. A zero ttl means
// records do not expire.
func NewRedis(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func convKey(id claim.ConversationID) string {
	return fmt.Sprintf("%s%d", convKeyPrefix, id)
}

func (s *RedisStore) Find(ctx context.Context, id claim.ConversationID) (claim.Record, error) {
	raw, err := s.client.Get(ctx, convKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return claim.Record{}, sentinel.ErrNotFound
	}
	if err != nil {
		return claim.Record{}, fmt.Errorf("find conversation %d: %w", id, err)
	}
	var rec claim.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return claim.Record{}, fmt.Errorf("decode conversation %d: %w", id, err)
	}
	return rec, nil
}

func (s *RedisStore) Save(ctx context.Context, rec claim.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode conversation %d: %w", rec.ConversationID, err)
	}
	if err := s.client.Set(ctx, convKey(rec.ConversationID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save conversation %d: %w", rec.ConversationID, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, id claim.ConversationID) error {
	if err := s.client.Del(ctx, convKey(id)).Err(); err != nil {
		return fmt.Errorf("clear conversation %d: %w", id, err)
	}
	return nil
}
