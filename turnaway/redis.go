package turnaway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis"
)

// DefaultRedisKey is the key records are stored under when none is given.
const DefaultRedisKey = "shiftsmart-turnaways"

// RedisStorage keeps the JSON-encoded record list under a single key.
type RedisStorage struct {
	client *redis.Client
	key    string
}

// NewRedisStorage returns a store using client. An empty key selects
// DefaultRedisKey.
func NewRedisStorage(client *redis.Client, key string) *RedisStorage {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStorage{client: client, key: key}
}

func (r *RedisStorage) Load(ctx context.Context) ([]Record, error) {
	data, err := r.client.WithContext(ctx).Get(r.key).Bytes()
	if err == redis.Nil {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", r.key, err)
	}

	return decode(data)
}

func (r *RedisStorage) Save(ctx context.Context, records []Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode turnaways: %w", err)
	}

	if err := r.client.WithContext(ctx).Set(r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}
