package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ninedttt/gamemaker-bot/internal/entity"
)

// RedisStore keeps the whole snapshot JSON-encoded under one namespaced
// key, so Save is a single atomic overwrite.
type RedisStore struct {
	logger *slog.Logger
	client *redis.Client
	key    string
}

// NewRedisStore connects to the store URL and probes it once. A failed
// probe is returned to the caller, who decides on the fallback backend.
func NewRedisStore(ctx context.Context, logger *slog.Logger, url, key string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("could not parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{
		logger: logger.With("component", "storage", "backend", "redis"),
		client: client,
		key:    key,
	}, nil
}

func (that *RedisStore) Load(ctx context.Context) *entity.Snapshot {
	raw, err := that.client.Get(ctx, that.key).Result()
	if errors.Is(err, redis.Nil) {
		return entity.NewSnapshot()
	}

	if err != nil {
		that.logger.Warn("could not load snapshot, using empty state", "error", err)
		return entity.NewSnapshot()
	}

	var snapshot entity.Snapshot
	if err = json.Unmarshal([]byte(raw), &snapshot); err != nil {
		that.logger.Warn("corrupt snapshot, using empty state", "error", err)
		return entity.NewSnapshot()
	}

	if snapshot.Sessions == nil {
		snapshot.Sessions = make(map[string]*entity.GameSession)
	}

	return &snapshot
}

func (that *RedisStore) Save(ctx context.Context, snapshot *entity.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	if err = that.client.Set(ctx, that.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

func (that *RedisStore) Backend() string {
	return "redis"
}

func (that *RedisStore) Close() error {
	if err := that.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}
	return nil
}
