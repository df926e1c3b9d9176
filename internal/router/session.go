package router

import (
	"context"
	"time"

	"cna-archives/pkg/sessionstore"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// NewSessionStore Redis可用时使用Redis，否则退回进程内存储
// 进程内存储在重启后丢失已注销的Token和录入计时，只适合单实例部署
func NewSessionStore(ctx context.Context, client *redis.Client, keyPrefix string, intakeTTL time.Duration, logger *logrus.Logger) SessionStore {
	store := sessionstore.NewRedisStore(client, keyPrefix, intakeTTL)
	if err := store.Ping(ctx); err != nil {
		logger.WithError(err).
			WithField("addr", client.Options().Addr).
			Warn("Redis不可用，会话状态改为保存在进程内存中")
		return sessionstore.NewMemoryStore()
	}
	return store
}
