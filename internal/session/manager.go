package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Manager 负责会话的打开、提交与轮换
type Manager struct {
	store Store
	ttl   time.Duration
	newID func() string
}

// NewManager 创建会话管理器
func NewManager(store Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 14 * 24 * time.Hour
	}
	return &Manager{
		store: store,
		ttl:   ttl,
		newID: func() string { return uuid.NewString() },
	}
}

// TTL 会话有效期
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Open 按 ID 打开会话；ID 非法或已过期时创建新会话，不沿用客户端提供的 ID
func (m *Manager) Open(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err == nil {
		values, ok, err := m.store.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			return newSession(m.store, id, values, false), nil
		}
	}
	return newSession(m.store, m.newID(), nil, true), nil
}

// Commit 持久化改动，未修改时不访问存储
func (m *Manager) Commit(ctx context.Context, s *Session) error {
	if s == nil || !s.Modified() {
		return nil
	}
	s.mu.Lock()
	oldID, id := s.oldID, s.id
	s.mu.Unlock()

	if oldID != "" {
		if err := m.store.Destroy(ctx, oldID); err != nil {
			return err
		}
	}
	changes := m.normalize(s, s.pendingChanges())
	if !changes.Empty() {
		if err := m.store.Save(ctx, id, changes, m.ttl); err != nil {
			return err
		}
	}
	s.markCommitted()
	return nil
}

func (m *Manager) normalize(s *Session, changes Changes) Changes {
	// 新会话在存储中没有旧字段，无需删除
	if s.IsNew() {
		changes.Deleted = nil
	}
	return changes
}

// Cycle 保留数据更换会话 ID（登录时防会话固定）
func (m *Manager) Cycle(s *Session) {
	if s == nil {
		return
	}
	s.rotate(m.newID(), true)
}

// Flush 清空数据并更换会话 ID（登出）
func (m *Manager) Flush(s *Session) {
	if s == nil {
		return
	}
	s.rotate(m.newID(), false)
}
