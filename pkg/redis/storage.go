package redis

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/incomeclarity/clientstate/pkg/kvstore"
)

const (
	defaultScanBatchSize = 1000
	defaultOpTimeout     = 2 * time.Second
)

var _ kvstore.Storage = (*Storage)(nil)

// Storage implements kvstore.Storage using Redis.
// Values are stored without expiration; session expiry is part of the payload.
type Storage struct {
	db            redis.UniversalClient
	prefix        string
	scanBatchSize int64
	opTimeout     time.Duration
}

// NewStorage creates a Redis storage with the given key prefix and default limits.
func NewStorage(client redis.UniversalClient, prefix string) *Storage {
	return &Storage{
		db:            client,
		prefix:        prefix,
		scanBatchSize: defaultScanBatchSize,
		opTimeout:     defaultOpTimeout,
	}
}

// NewStorageWithConfig creates a Redis storage with prefix and limits taken from cfg.
func NewStorageWithConfig(client redis.UniversalClient, cfg Config) *Storage {
	s := NewStorage(client, cfg.KeyPrefix)
	if cfg.ScanBatchSize > 0 {
		s.scanBatchSize = int64(cfg.ScanBatchSize)
	}
	if cfg.OpTimeout > 0 {
		s.opTimeout = cfg.OpTimeout
	}
	return s
}

// Get returns ok=false for missing values (redis.Nil).
func (s *Storage) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, kvstore.ErrEmptyKey
	}

	ctx, cancel := s.ctx()
	defer cancel()

	val, err := s.db.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores key-value without expiration.
func (s *Storage) Set(key, value string) error {
	if key == "" {
		return kvstore.ErrEmptyKey
	}

	ctx, cancel := s.ctx()
	defer cancel()

	return s.db.Set(ctx, s.prefix+key, value, 0).Err()
}

// Remove deletes a key. Missing keys are not an error.
func (s *Storage) Remove(key string) error {
	if key == "" {
		return kvstore.ErrEmptyKey
	}

	ctx, cancel := s.ctx()
	defer cancel()

	return s.db.Del(ctx, s.prefix+key).Err()
}

// Keys returns keys under the prefix using SCAN to avoid blocking Redis.
// The prefix is stripped from the returned keys.
func (s *Storage) Keys() ([]string, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	var (
		keys   []string
		cursor uint64
	)
	match := escapePattern(s.prefix) + "*"

	for {
		batch, next, err := s.db.Scan(ctx, cursor, match, s.scanBatchSize).Result()
		if err != nil {
			return nil, err
		}
		for _, k := range batch {
			keys = append(keys, strings.TrimPrefix(k, s.prefix))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	slices.Sort(keys)
	return slices.Compact(keys), nil
}

// Ping reports whether the server answers within the operation timeout.
func (s *Storage) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.db.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrUnhealthy, err)
	}
	return nil
}

// Close terminates the Redis connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Conn returns the underlying Redis client for advanced operations.
func (s *Storage) Conn() redis.UniversalClient {
	return s.db
}

func (s *Storage) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.opTimeout)
}

// escapePattern escapes glob metacharacters so the prefix matches literally.
func escapePattern(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
