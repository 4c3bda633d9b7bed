package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LJTian/eztax/internal/api"
	"github.com/LJTian/eztax/internal/collector"
	"github.com/LJTian/eztax/internal/config"
	"github.com/LJTian/eztax/internal/content"
	"github.com/LJTian/eztax/internal/logger"
	"github.com/LJTian/eztax/internal/news"
	"github.com/LJTian/eztax/internal/scheduler"
	"github.com/LJTian/eztax/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel)

	site, err := content.Load()
	if err != nil {
		log.Error("load site content failed", "err", err)
		os.Exit(1)
	}

	extractor, err := news.NewExtractor(cfg.NewsSourceOrigin)
	if err != nil {
		log.Error("init extractor failed", "err", err)
		os.Exit(1)
	}

	cache := storage.Open(cfg.RedisAddr)
	fetcher := news.NewCachedFetcher(
		collector.NewPageFetcher(cfg.NewsSourceURL, cfg.NewsFetchTimeout),
		cache,
		cfg.NewsRevalidate,
	)
	svc := news.NewService(fetcher, extractor, cfg.NewsSourceURL)

	var sched *scheduler.Scheduler
	if jobs := backgroundJobs(cfg, svc, cache); len(jobs) > 0 {
		sched, err = scheduler.New(jobs)
		if err != nil {
			log.Error("init scheduler failed", "err", err)
			os.Exit(1)
		}
		sched.Start(5 * time.Second)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestID(), api.AccessLog())

	if err := api.NewServer(svc, site).RegisterRoutes(r); err != nil {
		log.Error("register routes failed", "err", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server exit", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if sched != nil {
		<-sched.Stop().Done()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "err", err)
	}
}
