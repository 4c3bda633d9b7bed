package collector

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// 摘要前的分隔符：页面一般用 em dash，偶尔是 en dash 或连字符
var dashSeparators = []string{"—", "–", "-"}

// ScanAnnouncements 按当前 IRS 新闻页结构扫描条目，结构大致为：
//
//	<h3><a href="/newsroom/...">Title</a></h3>
//	<p><strong>IR-2025-112, Nov. 13, 2025</strong> — Summary</p>
//
// 只有标题、meta、摘要都能匹配上才会产出一条；结构不完整的条目直接跳过。
// 纯函数，不做任何网络请求。
func ScanAnnouncements(page string) []RawAnnouncement {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil
	}

	results := make([]RawAnnouncement, 0)
	doc.Find("h3").Each(func(_ int, h *goquery.Selection) {
		if raw, ok := scanOne(h); ok {
			results = append(results, raw)
		}
	})
	return results
}

func scanOne(h *goquery.Selection) (RawAnnouncement, bool) {
	link := h.Find("a[href]").First()
	if link.Length() == 0 {
		return RawAnnouncement{}, false
	}
	href := strings.TrimSpace(link.AttrOr("href", ""))
	if href == "" {
		return RawAnnouncement{}, false
	}

	// h3 后必须紧跟 <p>，中间只允许空白
	p := nextElement(h.Get(0))
	if p == nil || p.Data != "p" {
		return RawAnnouncement{}, false
	}

	lead := firstNonBlankChild(p)
	if lead == nil || lead.Type != html.ElementNode || (lead.Data != "strong" && lead.Data != "b") {
		return RawAnnouncement{}, false
	}

	summary, ok := cutDash(textAfter(lead))
	if !ok {
		return RawAnnouncement{}, false
	}

	return RawAnnouncement{
		Href:    href,
		Title:   link.Text(),
		Meta:    nodeText(lead),
		Summary: summary,
	}, true
}

func nextElement(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		switch s.Type {
		case html.ElementNode:
			return s
		case html.TextNode:
			if strings.TrimSpace(s.Data) != "" {
				return nil
			}
		}
	}
	return nil
}

func firstNonBlankChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.CommentNode:
			continue
		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
		}
		return c
	}
	return nil
}

// textAfter 拼接 n 之后所有兄弟节点的纯文本
func textAfter(n *html.Node) string {
	var sb strings.Builder
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		switch s.Type {
		case html.TextNode:
			sb.WriteString(s.Data)
		case html.ElementNode:
			sb.WriteString(nodeText(s))
		}
	}
	return sb.String()
}

func nodeText(n *html.Node) string {
	return goquery.NewDocumentFromNode(n).Text()
}

func cutDash(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, sep := range dashSeparators {
		if rest, ok := strings.CutPrefix(s, sep); ok {
			return rest, true
		}
	}
	return "", false
}
