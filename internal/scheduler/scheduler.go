package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/LJTian/eztax/internal/logger"
	"github.com/robfig/cron/v3"
)

const defaultJobTimeout = 30 * time.Second

// Job 是一个定时任务，Spec 为 cron 表达式或 "@every 1h" 形式
type Job struct {
	Name    string
	Spec    string
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

type Scheduler struct {
	cron *cron.Cron
	jobs []Job
}

func New(jobs []Job) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{cron: c, jobs: jobs}
	for _, j := range jobs {
		job := j
		if job.Run == nil {
			return nil, fmt.Errorf("scheduler: job %q has no Run func", job.Name)
		}
		if _, err := c.AddFunc(job.Spec, func() { s.run(job) }); err != nil {
			return nil, fmt.Errorf("scheduler: add job %q (%s): %w", job.Name, job.Spec, err)
		}
	}

	return s, nil
}

// EverySpec 把时长转换成 cron 的 "@every" 表达式
func EverySpec(d time.Duration) string {
	return "@every " + d.String()
}

// Start 启动定时器，并在 startupDelay 后执行一次全部任务，避免与首个页面请求争抢
func (s *Scheduler) Start(startupDelay time.Duration) {
	s.cron.Start()
	if startupDelay <= 0 {
		go s.RunOnce()
		return
	}
	time.AfterFunc(startupDelay, s.RunOnce)
}

// Stop 停止调度，返回的 context 在进行中的任务结束后关闭
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunOnce 并发执行一轮全部任务并等待结束，方便手动触发
func (s *Scheduler) RunOnce() {
	var wg sync.WaitGroup
	for _, j := range s.jobs {
		job := j
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.run(job)
		}()
	}
	wg.Wait()
}

func (s *Scheduler) run(job Job) {
	timeout := job.Timeout
	if timeout <= 0 {
		timeout = defaultJobTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		logger.L().Warn("job failed", "job", job.Name, "err", err, "elapsed", time.Since(start).String())
		return
	}
	logger.L().Info("job done", "job", job.Name, "elapsed", time.Since(start).String())
}
