package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	values    map[string]json.RawMessage
	expiresAt time.Time
}

// MemoryStore 进程内会话存储，用于单实例部署与测试
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

// NewMemoryStore 创建内存会话存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

// lookup 调用方需持有锁
func (s *MemoryStore) lookup(id string) *memoryEntry {
	entry, ok := s.entries[id]
	if !ok {
		return nil
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.entries, id)
		return nil
	}
	return entry
}

// Load 读取会话副本
func (s *MemoryStore) Load(_ context.Context, id string) (map[string]json.RawMessage, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.lookup(id)
	if entry == nil || len(entry.values) == 0 {
		return nil, false, nil
	}
	values := make(map[string]json.RawMessage, len(entry.values))
	for key, raw := range entry.values {
		values[key] = append(json.RawMessage(nil), raw...)
	}
	return values, true, nil
}

// Save 合并改动
func (s *MemoryStore) Save(_ context.Context, id string, changes Changes, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.lookup(id)
	if entry == nil {
		entry = &memoryEntry{values: make(map[string]json.RawMessage)}
		s.entries[id] = entry
	}
	for key, raw := range changes.Set {
		entry.values[key] = append(json.RawMessage(nil), raw...)
	}
	for _, key := range changes.Deleted {
		delete(entry.values, key)
	}
	if len(entry.values) == 0 {
		delete(s.entries, id)
		return nil
	}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	return nil
}

// Take 原子地取出字段
func (s *MemoryStore) Take(_ context.Context, id, key string) (json.RawMessage, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.lookup(id)
	if entry == nil {
		return nil, false, nil
	}
	raw, ok := entry.values[key]
	if !ok {
		return nil, false, nil
	}
	delete(entry.values, key)
	if len(entry.values) == 0 {
		delete(s.entries, id)
	}
	return raw, true, nil
}

// Destroy 删除会话
func (s *MemoryStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Len 当前会话数量
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
