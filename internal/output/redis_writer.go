package output

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "predator:ignore_list"

// RedisWriter stores the list under Key as a Redis list and records the refresh
// time and size in the hash Key+":meta". Both are replaced in one transaction.
type RedisWriter struct {
	Client redis.Cmdable
	Key    string
	Now    func() time.Time
}

func NewRedisWriter(client redis.Cmdable, key string) *RedisWriter {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisWriter{Client: client, Key: key, Now: time.Now}
}

func (w *RedisWriter) Write(ctx context.Context, entries []string) error {
	if w.Client == nil {
		return errors.New("output: redis client is nil")
	}

	values := make([]interface{}, len(entries))
	for i, entry := range entries {
		values[i] = entry
	}

	now := time.Now
	if w.Now != nil {
		now = w.Now
	}

	_, err := w.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, w.Key)
		if len(values) > 0 {
			pipe.RPush(ctx, w.Key, values...)
		}
		pipe.HSet(ctx, w.metaKey(),
			"updated_at", now().UTC().Format(time.RFC3339),
			"count", len(entries),
		)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store ignore list in redis key %s: %w", w.Key, err)
	}
	return nil
}

func (w *RedisWriter) metaKey() string {
	return w.Key + ":meta"
}
