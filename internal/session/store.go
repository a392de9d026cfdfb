package session

import (
	"context"
	"encoding/json"
	"time"
)

// Changes 一次请求内需要持久化的会话改动
type Changes struct {
	Set     map[string]json.RawMessage
	Deleted []string
}

// Empty 是否没有任何改动
func (c Changes) Empty() bool {
	return len(c.Set) == 0 && len(c.Deleted) == 0
}

// Store 会话存储接口，按字段读写，避免并发请求互相覆盖
type Store interface {
	Load(ctx context.Context, id string) (map[string]json.RawMessage, bool, error)
	Save(ctx context.Context, id string, changes Changes, ttl time.Duration) error
	// Take 原子地读取并删除单个字段
	Take(ctx context.Context, id, key string) (json.RawMessage, bool, error)
	Destroy(ctx context.Context, id string) error
}
