package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces session keys so a shared Redis instance can
// serve other applications without collisions.
const redisKeyPrefix = "gridlock:session:"

// RedisConfig configures a Redis-backed session store.
type RedisConfig struct {
	// Addr is the Redis server address, host:port.
	Addr string

	// Password is the optional server password.
	Password string

	// DB selects the Redis logical database.
	DB int
}

// RedisStore keeps sessions in Redis. Expiry is delegated to Redis key
// TTLs, so expired sessions vanish without any cleanup pass, and
// multiple server instances can share one session space.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection with a
// ping before returning the store.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}
	return &RedisStore{client: client}, nil
}

func redisKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := s.client.Get(ctx, redisKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	if sess.IsExpired() {
		// TTL drift: the key outlived the embedded expiry. Drop it.
		_ = s.client.Del(ctx, redisKey(sessionID)).Err()
		return nil, nil
	}
	return &sess, nil
}

func (s *RedisStore) Set(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", sess.ID)
	}
	if err := s.client.Set(ctx, redisKey(sess.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, redisKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Cleanup is a no-op: Redis expires session keys on its own.
func (s *RedisStore) Cleanup(ctx context.Context) error { return nil }

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
