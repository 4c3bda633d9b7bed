package collector

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/LJTian/eztax/internal/logger"
	"github.com/gocolly/colly/v2"
)

const (
	DefaultUserAgent = "eztaxBot/1.0 (+https://eztax.app)"
	DefaultTimeout   = 5 * time.Second
	maxBodyBytes     = 4 << 20 // 4MB
)

// PageFetcher 对一个固定 URL 发起一次 GET，返回响应正文
type PageFetcher struct {
	URL       string
	Timeout   time.Duration
	UserAgent string
}

func NewPageFetcher(pageURL string, timeout time.Duration) *PageFetcher {
	return &PageFetcher{URL: pageURL, Timeout: timeout, UserAgent: DefaultUserAgent}
}

func (p *PageFetcher) Name() string {
	return "page:" + p.URL
}

func (p *PageFetcher) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	u, err := url.Parse(p.URL)
	if err != nil || u.Hostname() == "" {
		return "", fmt.Errorf("collector: invalid page url %q", p.URL)
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	// 调用方的 deadline 更早时以其为准
	if dl, ok := ctx.Deadline(); ok {
		if rem := time.Until(dl); rem < timeout {
			timeout = rem
		}
	}
	ua := p.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	// 每次抓取新建 collector，避免 colly 的“已访问”去重挡住重复抓取
	// 不限制域名：上游跳转到其他主机（如 irs.gov -> www.irs.gov）也要跟随
	c := colly.NewCollector(
		colly.UserAgent(ua),
		colly.MaxBodySize(maxBodyBytes),
	)
	c.SetRequestTimeout(timeout)
	// 所有状态码都交给 OnResponse，由 isSuccess 统一判断
	c.ParseHTTPErrorResponse = true

	var (
		body   string
		status int
	)
	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		r.Headers.Set("Accept", "text/html,application/xhtml+xml")
	})
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = string(r.Body)
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	start := time.Now()
	if err := c.Visit(p.URL); err != nil {
		if status != 0 && !isSuccess(status) {
			return "", fmt.Errorf("collector: %s: %w %d", p.URL, ErrUnexpectedStatus, status)
		}
		return "", fmt.Errorf("collector: fetch %s: %w", p.URL, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !isSuccess(status) {
		return "", fmt.Errorf("collector: %s: %w %d", p.URL, ErrUnexpectedStatus, status)
	}

	logger.L().Debug("page fetched", "url", p.URL, "bytes", len(body), "elapsed", time.Since(start).String())
	return body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
