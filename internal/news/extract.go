package news

import (
	"github.com/LJTian/eztax/internal/collector"
	"github.com/LJTian/eztax/internal/processor"
)

// Extractor 把原始 HTML 转为有序、有上限的条目列表；无 I/O，同样输入总得到同样输出
type Extractor struct {
	proc *processor.SimpleProcessor
}

func NewExtractor(origin string) (*Extractor, error) {
	p, err := processor.NewSimpleProcessor(origin)
	if err != nil {
		return nil, err
	}
	return &Extractor{proc: p}, nil
}

func (e *Extractor) Extract(page string) []processor.Announcement {
	return e.proc.Process(collector.ScanAnnouncements(page))
}
