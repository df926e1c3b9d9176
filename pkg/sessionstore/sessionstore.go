// Package sessionstore 基于Redis保存会话相关的短期状态：
// 已注销的Token标识，以及每个用户录入表单的打开时间
package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore 基于Redis的会话状态存储
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	intakeTTL time.Duration
}

// NewRedisStore 创建Redis会话存储
func NewRedisStore(client *redis.Client, keyPrefix string, intakeTTL time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		intakeTTL: intakeTTL,
	}
}

func (s *RedisStore) revokedKey(tokenID string) string {
	return s.keyPrefix + "revoked:" + tokenID
}

func (s *RedisStore) intakeKey(userID uint) string {
	return s.keyPrefix + "intake:" + strconv.FormatUint(uint64(userID), 10)
}

// Revoke 注销Token，记录保留到Token自然过期为止
func (s *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.revokedKey(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("注销Token失败: %w", err)
	}
	return nil
}

// IsRevoked 检查Token是否已注销
func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("查询Token状态失败: %w", err)
	}
	return n > 0, nil
}

// MarkIntakeStart 记录录入表单打开时间
func (s *RedisStore) MarkIntakeStart(ctx context.Context, userID uint, at time.Time) error {
	value := strconv.FormatInt(at.Unix(), 10)
	if err := s.client.Set(ctx, s.intakeKey(userID), value, s.intakeTTL).Err(); err != nil {
		return fmt.Errorf("记录录入开始时间失败: %w", err)
	}
	return nil
}

// IntakeStart 获取录入表单打开时间，未记录时返回 false
func (s *RedisStore) IntakeStart(ctx context.Context, userID uint) (time.Time, bool, error) {
	unix, err := s.client.Get(ctx, s.intakeKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("读取录入开始时间失败: %w", err)
	}
	return time.Unix(unix, 0).UTC(), true, nil
}

// Ping 检查Redis连接
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
