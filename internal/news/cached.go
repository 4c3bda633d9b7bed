package news

import (
	"context"
	"errors"
	"time"

	"github.com/LJTian/eztax/internal/collector"
	"github.com/LJTian/eztax/internal/logger"
	"github.com/LJTian/eztax/internal/storage"
)

const DefaultRevalidate = time.Hour

// CachedFetcher 在再验证窗口内复用缓存的页面，窗口过后才重新请求上游。
// 只缓存成功的响应，失败不会占住整个窗口。
type CachedFetcher struct {
	fetcher  collector.Fetcher
	cache    storage.PageCache
	interval time.Duration
}

func NewCachedFetcher(f collector.Fetcher, cache storage.PageCache, interval time.Duration) *CachedFetcher {
	if interval <= 0 {
		interval = DefaultRevalidate
	}
	return &CachedFetcher{fetcher: f, cache: cache, interval: interval}
}

func (c *CachedFetcher) Name() string {
	return "cached:" + c.fetcher.Name()
}

func (c *CachedFetcher) Interval() time.Duration {
	return c.interval
}

func (c *CachedFetcher) cacheKey() string {
	return "news:page:" + c.fetcher.Name()
}

func (c *CachedFetcher) Fetch(ctx context.Context) (string, error) {
	body, err := c.cache.Get(ctx, c.cacheKey())
	if err == nil {
		return body, nil
	}
	if !errors.Is(err, storage.ErrCacheMiss) {
		// 缓存不可用时直接回源
		logger.L().Warn("page cache get failed", "key", c.cacheKey(), "err", err)
	}
	return c.Revalidate(ctx)
}

// Revalidate 跳过缓存读取，直接回源并写回缓存
func (c *CachedFetcher) Revalidate(ctx context.Context) (string, error) {
	body, err := c.fetcher.Fetch(ctx)
	if err != nil {
		return "", err
	}
	if err := c.cache.Set(ctx, c.cacheKey(), body, c.interval); err != nil {
		logger.L().Warn("page cache set failed", "key", c.cacheKey(), "err", err)
	}
	return body, nil
}
