package session

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
)

// Session 单次请求内的会话视图，记录脏字段，提交时只写改动
type Session struct {
	mu      sync.Mutex
	store   Store
	id      string
	oldID   string
	isNew   bool
	rewrite bool
	values  map[string]json.RawMessage
	dirty   map[string]struct{}
	deleted map[string]struct{}
}

func newSession(store Store, id string, values map[string]json.RawMessage, isNew bool) *Session {
	if values == nil {
		values = make(map[string]json.RawMessage)
	}
	return &Session{
		store:   store,
		id:      id,
		isNew:   isNew,
		values:  values,
		dirty:   make(map[string]struct{}),
		deleted: make(map[string]struct{}),
	}
}

// ID 会话 ID
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// IsNew 本次请求新建的会话
func (s *Session) IsNew() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isNew
}

// Has 是否存在字段
func (s *Session) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[key]
	return ok
}

// Keys 全部字段名（有序）
func (s *Session) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Get 读取并解码字段
func (s *Session) Get(key string, dest interface{}) (bool, error) {
	s.mu.Lock()
	raw, ok := s.values[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return true, err
	}
	return true, nil
}

// Set 编码并写入字段，标记为已修改
func (s *Session) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = raw
	s.dirty[key] = struct{}{}
	delete(s.deleted, key)
	return nil
}

// Delete 删除字段，不存在时不做任何事
func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	delete(s.dirty, key)
	s.deleted[key] = struct{}{}
}

// Take 原子地取出并解码字段。已持久化的字段在存储层原子删除，同一份数据只会被取出一次
func (s *Session) Take(ctx context.Context, key string, dest interface{}) (bool, error) {
	s.mu.Lock()
	raw, known := s.values[key]
	if !known {
		s.mu.Unlock()
		return false, nil
	}
	_, pending := s.dirty[key]
	storeID := s.id
	switch {
	case pending:
		storeID = ""
	case s.rewrite:
		// 轮换后数据仍在旧 ID 下
		storeID = s.oldID
	case s.isNew:
		storeID = ""
	}
	delete(s.values, key)
	delete(s.dirty, key)
	if !s.rewrite {
		s.deleted[key] = struct{}{}
	}
	s.mu.Unlock()

	if storeID == "" {
		return true, json.Unmarshal(raw, dest)
	}

	stored, ok, err := s.store.Take(ctx, storeID, key)
	if err != nil {
		s.mu.Lock()
		s.values[key] = raw
		delete(s.deleted, key)
		s.mu.Unlock()
		return false, err
	}
	if !ok {
		// 并发请求已经取走
		return false, nil
	}
	return true, json.Unmarshal(stored, dest)
}

// Modified 是否有待提交的改动
func (s *Session) Modified() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rewrite || s.oldID != "" || len(s.dirty) > 0 || len(s.deleted) > 0
}

// pendingChanges 汇总待写入的字段
func (s *Session) pendingChanges() Changes {
	s.mu.Lock()
	defer s.mu.Unlock()
	changes := Changes{Set: make(map[string]json.RawMessage)}
	if s.rewrite {
		for key, raw := range s.values {
			changes.Set[key] = raw
		}
	} else {
		for key := range s.dirty {
			changes.Set[key] = s.values[key]
		}
	}
	for key := range s.deleted {
		changes.Deleted = append(changes.Deleted, key)
	}
	sort.Strings(changes.Deleted)
	return changes
}

func (s *Session) markCommitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = make(map[string]struct{})
	s.deleted = make(map[string]struct{})
	s.rewrite = false
	s.oldID = ""
	s.isNew = false
}

// rotate 切换到新 ID，keep 为 false 时清空数据
func (s *Session) rotate(newID string, keep bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isNew && s.oldID == "" {
		s.oldID = s.id
	}
	s.id = newID
	s.isNew = true
	s.rewrite = true
	s.deleted = make(map[string]struct{})
	// 保留数据时 dirty 仍标记尚未落盘的字段，Take 据此在本地解码
	if !keep {
		s.values = make(map[string]json.RawMessage)
		s.dirty = make(map[string]struct{})
	}
}
