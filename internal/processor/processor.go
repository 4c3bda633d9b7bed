package processor

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/LJTian/eztax/internal/collector"
)

// MaxAnnouncements 单次最多展示的条目数
const MaxAnnouncements = 12

// Announcement 是页面与 API 使用的规范化条目
type Announcement struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	ReferenceCode     *string `json:"referenceCode"`
	PublishedDateText *string `json:"publishedDateText"`
	Summary           string  `json:"summary"`
	URL               string  `json:"url"`
}

// SimpleProcessor 负责文本清洗、meta 拆分、链接补全与截断
type SimpleProcessor struct {
	origin *url.URL
	limit  int
}

// NewSimpleProcessor origin 用于补全相对链接，例如 https://www.irs.gov
func NewSimpleProcessor(origin string) (*SimpleProcessor, error) {
	u, err := url.Parse(strings.TrimSpace(origin))
	if err != nil {
		return nil, fmt.Errorf("processor: parse origin: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("processor: origin %q must be an absolute url", origin)
	}
	return &SimpleProcessor{origin: u, limit: MaxAnnouncements}, nil
}

func (p *SimpleProcessor) Process(items []collector.RawAnnouncement) []Announcement {
	out := make([]Announcement, 0, min(len(items), p.limit))

	for _, it := range items {
		if len(out) >= p.limit {
			break
		}

		title := strings.TrimSpace(it.Title)
		meta := strings.TrimSpace(it.Meta)
		summary := strings.TrimSpace(it.Summary)
		// 三段缺一不可，不产出残缺条目
		if title == "" || meta == "" || summary == "" {
			continue
		}

		link, ok := ResolveURL(p.origin, it.Href)
		if !ok {
			continue
		}

		code, date := SplitMeta(meta)
		out = append(out, Announcement{
			ID:                hashURL(fmt.Sprintf("%d|%s", len(out), link)),
			Title:             title,
			ReferenceCode:     code,
			PublishedDateText: date,
			Summary:           summary,
			URL:               link,
		})
	}

	return out
}

// SplitMeta 把 "IR-2025-112, Nov. 13, 2025" 拆成编号与日期文本。
// 没有逗号时整段视为编号，日期为空。
func SplitMeta(meta string) (code, date *string) {
	parts := strings.Split(meta, ",")
	if len(parts) >= 2 {
		return optional(parts[0]), optional(strings.Join(parts[1:], ","))
	}
	return optional(meta), nil
}

// ResolveURL 已带 scheme 的链接原样返回，否则基于 origin 补全
func ResolveURL(origin *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		// 解析不了（如未转义的 %）也不丢条目：带 scheme 的原样保留，否则直接拼 origin
		if hasScheme(href) {
			return href, true
		}
		if !strings.HasPrefix(href, "/") {
			href = "/" + href
		}
		return strings.TrimRight(origin.String(), "/") + href, true
	}
	if ref.IsAbs() {
		return href, true
	}
	return origin.ResolveReference(ref).String(), true
}

func hasScheme(href string) bool {
	scheme, _, ok := strings.Cut(href, ":")
	if !ok || scheme == "" || strings.ContainsAny(scheme, "/?#") {
		return false
	}
	return true
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func hashURL(url string) string {
	h := sha1.New()
	h.Write([]byte(url))
	return hex.EncodeToString(h.Sum(nil))
}
