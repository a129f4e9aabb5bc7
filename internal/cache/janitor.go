package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Janitor 按cron表达式定期清理过期缓存
type Janitor struct {
	cache Cache
	cron  *cron.Cron
}

// NewJanitor 创建清理任务，schedule 支持标准cron表达式和 "@every 1h"
func NewJanitor(c Cache, schedule string) (*Janitor, error) {
	j := &Janitor{
		cache: c,
		cron:  cron.New(),
	}
	if _, err := j.cron.AddFunc(schedule, j.run); err != nil {
		return nil, fmt.Errorf("invalid cache clean schedule %q: %w", schedule, err)
	}
	return j, nil
}

// Start 启动定时任务
func (j *Janitor) Start() {
	j.cron.Start()
}

// Stop 停止并等待正在运行的任务结束
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

func (j *Janitor) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := j.Clean(ctx); err != nil {
		log.Printf("[Cache] Failed to clean expired entries: %v", err)
	}
}

// Clean 执行一次清理，返回删除条数
func (j *Janitor) Clean(ctx context.Context) (int64, error) {
	removed, err := j.cache.CleanExpired(ctx)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		log.Printf("[Cache] Removed %d expired entries", removed)
	}
	return removed, nil
}
