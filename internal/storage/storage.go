package storage

import (
	"context"
	"errors"
	"time"

	"github.com/LJTian/eztax/internal/logger"
)

// ErrCacheMiss 表示缓存中没有该 key 或已过期
var ErrCacheMiss = errors.New("storage: cache miss")

// PageCache 是带过期时间的页面缓存：Redis 或进程内实现
type PageCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Open 按配置选择缓存实现：配置了 Redis 且可连通时用 Redis，否则退回进程内缓存
func Open(redisAddr string) PageCache {
	if redisAddr == "" {
		logger.L().Info("page cache: using in-process memory cache")
		return NewMemoryCache()
	}

	rc := NewRedisCache(redisAddr)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		logger.L().Warn("redis ping failed, falling back to memory cache", "addr", redisAddr, "err", err)
		_ = rc.Close()
		return NewMemoryCache()
	}

	logger.L().Info("page cache: using redis", "addr", redisAddr)
	return rc
}
