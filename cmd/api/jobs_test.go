package main

import (
	"context"
	"testing"
	"time"

	"github.com/LJTian/eztax/internal/collector"
	"github.com/LJTian/eztax/internal/config"
	"github.com/LJTian/eztax/internal/news"
	"github.com/LJTian/eztax/internal/scheduler"
	"github.com/LJTian/eztax/internal/storage"
)

func testService(t *testing.T, cache storage.PageCache) *news.Service {
	t.Helper()
	ex, err := news.NewExtractor(config.DefaultNewsSourceOrigin)
	if err != nil {
		t.Fatalf("NewExtractor error: %v", err)
	}
	f := news.NewCachedFetcher(collector.NewPageFetcher("http://127.0.0.1:1/news", time.Second), cache, time.Hour)
	return news.NewService(f, ex, "http://127.0.0.1:1/news")
}

func jobNames(jobs []scheduler.Job) map[string]bool {
	names := make(map[string]bool, len(jobs))
	for _, j := range jobs {
		names[j.Name] = true
	}
	return names
}

func TestBackgroundJobs(t *testing.T) {
	cases := []struct {
		name        string
		warm        bool
		wantWarm    bool
		wantCleanup bool
	}{
		{"warm on", true, true, true},
		{"warm off still cleans memory cache", false, false, true},
	}

	for _, c := range cases {
		cache := storage.NewMemoryCache()
		cfg := &config.Config{NewsWarm: c.warm, NewsRevalidate: time.Hour, NewsFetchTimeout: time.Second}

		names := jobNames(backgroundJobs(cfg, testService(t, cache), cache))
		if names["news_revalidate"] != c.wantWarm {
			t.Fatalf("%s: news_revalidate registered = %v, want %v", c.name, names["news_revalidate"], c.wantWarm)
		}
		if names["cache_cleanup"] != c.wantCleanup {
			t.Fatalf("%s: cache_cleanup registered = %v, want %v", c.name, names["cache_cleanup"], c.wantCleanup)
		}
	}
}

func TestBackgroundJobsCleanupEvictsExpired(t *testing.T) {
	cache := storage.NewMemoryCache()
	cfg := &config.Config{NewsWarm: false}

	jobs := backgroundJobs(cfg, testService(t, cache), cache)
	if len(jobs) != 1 {
		t.Fatalf("expected only the cleanup job, got %d", len(jobs))
	}

	if err := cache.Set(context.Background(), "k", "v", time.Millisecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if err := jobs[0].Run(context.Background()); err != nil {
		t.Fatalf("cleanup error: %v", err)
	}
	if n := cache.Size(); n != 0 {
		t.Fatalf("Size after cleanup = %d, want 0", n)
	}
}

func TestBackgroundJobsSpecsAreValid(t *testing.T) {
	cache := storage.NewMemoryCache()
	cfg := &config.Config{NewsWarm: true, NewsRevalidate: 15 * time.Minute, NewsFetchTimeout: time.Second}

	if _, err := scheduler.New(backgroundJobs(cfg, testService(t, cache), cache)); err != nil {
		t.Fatalf("scheduler.New error: %v", err)
	}
}
