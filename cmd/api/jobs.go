package main

import (
	"context"
	"time"

	"github.com/LJTian/eztax/internal/config"
	"github.com/LJTian/eztax/internal/logger"
	"github.com/LJTian/eztax/internal/news"
	"github.com/LJTian/eztax/internal/scheduler"
	"github.com/LJTian/eztax/internal/storage"
)

const cacheCleanupSpec = "@every 10m"

// backgroundJobs 组装定时任务：
// 预热由 NEWS_WARM 控制；进程内缓存无论是否预热都要定期清理过期项
func backgroundJobs(cfg *config.Config, svc *news.Service, cache storage.PageCache) []scheduler.Job {
	var jobs []scheduler.Job

	if cfg.NewsWarm {
		jobs = append(jobs, scheduler.Job{
			Name:    "news_revalidate",
			Spec:    scheduler.EverySpec(cfg.NewsRevalidate),
			Timeout: cfg.NewsFetchTimeout + 5*time.Second,
			Run: func(ctx context.Context) error {
				feed, err := svc.Refresh(ctx)
				if err != nil {
					return err
				}
				logger.L().Info("news cache warmed", "items", len(feed.Items))
				return nil
			},
		})
	}

	if mc, ok := cache.(*storage.MemoryCache); ok {
		jobs = append(jobs, scheduler.Job{
			Name: "cache_cleanup",
			Spec: cacheCleanupSpec,
			Run: func(context.Context) error {
				if n := mc.CleanExpired(); n > 0 {
					logger.L().Debug("cache cleanup", "removed", n)
				}
				return nil
			},
		})
	}

	return jobs
}
