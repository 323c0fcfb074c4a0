// Package scheduler 运行定时维护任务（爬取日志保留期清理）。
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"bidwatch/backend/config"
)

// Pruner 按保留天数清理数据的任务
type Pruner interface {
	Prune(ctx context.Context, retentionDays int) (int64, error)
}

// 单次清理的超时
const pruneTimeout = 5 * time.Minute

// Scheduler 封装 robfig/cron
type Scheduler struct {
	cron          *cron.Cron
	pruner        Pruner
	spec          string
	retentionDays int
	logger        *zap.Logger
}

// New 创建日志清理调度器，spec 如 "@daily" / "0 3 * * *"
func New(cfg *config.LogsConfig, pruner Pruner, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		pruner:        pruner,
		spec:          cfg.PruneSpec,
		retentionDays: cfg.RetentionDays,
		logger:        logger,
	}
}

// Start 注册任务并启动；ctx 取消后不再触发新的清理
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc(%q): %w", s.spec, err)
	}
	s.cron.Start()
	s.logger.Info("日志清理任务已启动",
		zap.String("spec", s.spec),
		zap.Int("retention_days", s.retentionDays),
	)
	return nil
}

// Stop 停止调度并等待运行中的任务结束
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("日志清理任务已停止")
}

// RunOnce 立即执行一次清理
func (s *Scheduler) RunOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, pruneTimeout)
	defer cancel()

	if _, err := s.pruner.Prune(ctx, s.retentionDays); err != nil {
		s.logger.Error("日志清理失败", zap.Error(err))
	}
}
