package workspace

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/texrig/texrig/pkg/errors"
)

// RedisStore implements Store backed by Redis, for multi-instance server
// deployments where the workspace document must be visible to whichever
// instance handles the next request.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStore connects to Redis and returns a Store backed by it.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to redis workspace store")
	}
	return &RedisStore{client: client, prefix: "workspace:"}, nil
}

func (s *RedisStore) key(id string) string { return s.prefix + id }

func (s *RedisStore) Get(ctx context.Context, id string) (*Document, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "get workspace document %q", id)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "parse workspace document %q", id)
	}
	return &doc, nil
}

func (s *RedisStore) Set(ctx context.Context, doc *Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal workspace document")
	}
	if err := s.client.Set(ctx, s.key(doc.ID), data, 0).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "set workspace document %q", doc.ID)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete workspace document %q", id)
	}
	return nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
