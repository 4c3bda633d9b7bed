package collector

import (
	"context"
	"errors"
)

// ErrUnexpectedStatus 表示上游返回了非 2xx 状态码
var ErrUnexpectedStatus = errors.New("unexpected status")

// Fetcher 抽象一个远端页面源：返回原始 HTML 文本或错误，不返回部分内容
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (string, error)
}

// RawAnnouncement 是扫描页面得到的原始片段，文本已去掉嵌套标签但尚未规范化
type RawAnnouncement struct {
	Href    string
	Title   string
	Meta    string
	Summary string
}
