package news

import (
	"context"
	"time"

	"github.com/LJTian/eztax/internal/logger"
	"github.com/LJTian/eztax/internal/processor"
)

// Feed 是交给展示层的结果。
// Unavailable 只在抓取失败时为 true；抓取成功但没有匹配条目时 Items 为空且 Unavailable 为 false。
type Feed struct {
	Items       []processor.Announcement `json:"items"`
	Unavailable bool                     `json:"unavailable"`
	SourceURL   string                   `json:"sourceUrl"`
	FetchedAt   time.Time                `json:"fetchedAt"`
}

type Service struct {
	fetcher   *CachedFetcher
	extractor *Extractor
	sourceURL string
	now       func() time.Time
}

func NewService(fetcher *CachedFetcher, extractor *Extractor, sourceURL string) *Service {
	return &Service{
		fetcher:   fetcher,
		extractor: extractor,
		sourceURL: sourceURL,
		now:       time.Now,
	}
}

func (s *Service) SourceURL() string {
	return s.sourceURL
}

// Latest 取最新条目；任何抓取错误都在这里降级为空列表，不向上抛
func (s *Service) Latest(ctx context.Context) Feed {
	page, err := s.fetcher.Fetch(ctx)
	if err != nil {
		logger.L().Warn("fetch news failed", "source", s.sourceURL, "err", err)
		return s.feed(nil, true)
	}
	return s.build(page)
}

// Refresh 强制回源并刷新缓存，供定时任务与命令行使用
func (s *Service) Refresh(ctx context.Context) (Feed, error) {
	page, err := s.fetcher.Revalidate(ctx)
	if err != nil {
		return s.feed(nil, true), err
	}
	return s.build(page), nil
}

func (s *Service) build(page string) Feed {
	items := s.extractor.Extract(page)
	if len(items) == 0 {
		// 页面结构变化时也会走到这里
		logger.L().Info("news page parsed with 0 items", "source", s.sourceURL, "bytes", len(page))
	}
	return s.feed(items, false)
}

func (s *Service) feed(items []processor.Announcement, unavailable bool) Feed {
	if items == nil {
		items = []processor.Announcement{}
	}
	return Feed{
		Items:       items,
		Unavailable: unavailable,
		SourceURL:   s.sourceURL,
		FetchedAt:   s.now().UTC(),
	}
}
