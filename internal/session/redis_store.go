package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var takeFieldScript = redis.NewScript(`
local v = redis.call("HGET", KEYS[1], ARGV[1])
if v then
	redis.call("HDEL", KEYS[1], ARGV[1])
end
return v
`)

// RedisStore 基于 Redis Hash 的会话存储，每个会话一个 hash
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 创建 Redis 会话存储
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "session"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(id string) string {
	return fmt.Sprintf("%s:%s", s.prefix, id)
}

// Load 读取会话全部字段
func (s *RedisStore) Load(ctx context.Context, id string) (map[string]json.RawMessage, bool, error) {
	fields, err := s.client.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return nil, false, err
	}
	if len(fields) == 0 {
		return nil, false, nil
	}
	values := make(map[string]json.RawMessage, len(fields))
	for field, raw := range fields {
		values[field] = json.RawMessage(raw)
	}
	return values, true, nil
}

// Save 写入改动字段并续期
func (s *RedisStore) Save(ctx context.Context, id string, changes Changes, ttl time.Duration) error {
	key := s.key(id)
	pipe := s.client.TxPipeline()
	if len(changes.Set) > 0 {
		fields := make(map[string]interface{}, len(changes.Set))
		for field, raw := range changes.Set {
			fields[field] = string(raw)
		}
		pipe.HSet(ctx, key, fields)
	}
	if len(changes.Deleted) > 0 {
		pipe.HDel(ctx, key, changes.Deleted...)
	}
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Take 原子地取出字段
func (s *RedisStore) Take(ctx context.Context, id, key string) (json.RawMessage, bool, error) {
	raw, err := takeFieldScript.Run(ctx, s.client, []string{s.key(id)}, key).Text()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return json.RawMessage(raw), true, nil
}

// Destroy 删除会话
func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}
