package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/goliatone/go-signupform/pkg/formstate"
)

// RedisStore keeps msgpack-encoded snapshots in Redis with native expiry.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

var _ Store = (*RedisStore)(nil)

// RedisOptions mirror the subset of redis.Options the service configures.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewRedisClient connects a client from opts.
func NewRedisClient(opts RedisOptions) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
}

// NewRedisStore wraps client. Keys are prefix + session id.
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Load(ctx context.Context, id string) (formstate.Snapshot, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return formstate.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return formstate.Snapshot{}, fmt.Errorf("session: redis get: %w", err)
	}
	return decodeSnapshot(raw)
}

func (s *RedisStore) Save(ctx context.Context, id string, snapshot formstate.Snapshot, ttl time.Duration) error {
	raw, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(id), raw, ttl).Err(); err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func encodeSnapshot(snapshot formstate.Snapshot) ([]byte, error) {
	raw, err := msgpack.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("session: encode snapshot: %w", err)
	}
	return raw, nil
}

func decodeSnapshot(raw []byte) (formstate.Snapshot, error) {
	var snapshot formstate.Snapshot
	if err := msgpack.Unmarshal(raw, &snapshot); err != nil {
		return formstate.Snapshot{}, fmt.Errorf("session: decode snapshot: %w", err)
	}
	return snapshot, nil
}
