package sessionstore

import (
	"context"
	"sync"
	"time"
)

// MemoryStore 进程内实现，用于测试和单机调试
type MemoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	intake  map[uint]time.Time
	now     func() time.Time
}

// NewMemoryStore 创建进程内会话存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		revoked: make(map[string]time.Time),
		intake:  make(map[uint]time.Time),
		now:     time.Now,
	}
}

// Revoke 注销Token
func (s *MemoryStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = s.now().Add(ttl)
	return nil
}

// IsRevoked 检查Token是否已注销
func (s *MemoryStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

// MarkIntakeStart 记录录入表单打开时间
func (s *MemoryStore) MarkIntakeStart(_ context.Context, userID uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intake[userID] = at.UTC()
	return nil
}

// IntakeStart 获取录入表单打开时间
func (s *MemoryStore) IntakeStart(_ context.Context, userID uint) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.intake[userID]
	return at, ok, nil
}

