package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"bidwatch/backend/internal/dto"
	"bidwatch/backend/internal/repository"
)

// 未指定天数时的默认查询范围
const defaultLogGap = 7

// LogService 爬取日志业务接口
type LogService interface {
	Logs(ctx context.Context, gap int) ([]*dto.ScrapingLog, error)
	Errors(ctx context.Context, gap int) ([]*dto.ScrapingError, error)
	// Prune 删除 retentionDays 天之前的日志
	Prune(ctx context.Context, retentionDays int) (int64, error)
}

type logService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewLogService 创建 LogService 实例
func NewLogService(repo *repository.Repository, logger *zap.Logger) LogService {
	return &logService{repo: repo, logger: logger, now: time.Now}
}

func (s *logService) since(gap int) time.Time {
	if gap <= 0 {
		gap = defaultLogGap
	}
	return *sinceDays(s.now(), gap)
}

func (s *logService) Logs(ctx context.Context, gap int) ([]*dto.ScrapingLog, error) {
	logs, err := s.repo.ScrapingLog.ListLogs(ctx, s.since(gap))
	if err != nil {
		s.logger.Error("查询爬取日志失败", zap.Int("gap", gap), zap.Error(err))
		return nil, err
	}

	result := make([]*dto.ScrapingLog, 0, len(logs))
	for _, l := range logs {
		item := &dto.ScrapingLog{
			ID:            int32(l.ID),
			OrgName:       l.OrgName,
			ErrorMessage:  l.ErrorMessage,
			ScrapedCount:  int32(l.ScrapedCount),
			InsertedCount: int32(l.InsertedCount),
			Time:          formatTime(l.Time),
		}
		if l.ErrorCode != nil {
			code := int32(*l.ErrorCode)
			item.ErrorCode = &code
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *logService) Errors(ctx context.Context, gap int) ([]*dto.ScrapingError, error) {
	errs, err := s.repo.ScrapingLog.ListErrors(ctx, s.since(gap))
	if err != nil {
		s.logger.Error("查询爬取错误失败", zap.Int("gap", gap), zap.Error(err))
		return nil, err
	}

	result := make([]*dto.ScrapingError, 0, len(errs))
	for _, e := range errs {
		result = append(result, &dto.ScrapingError{
			ID:   int32(e.ID),
			Orgs: e.Orgs,
			Time: formatTime(e.Time),
		})
	}
	return result, nil
}

func (s *logService) Prune(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	before := s.now().AddDate(0, 0, -retentionDays)
	n, err := s.repo.ScrapingLog.Prune(ctx, before)
	if err != nil {
		s.logger.Error("清理爬取日志失败", zap.Time("before", before), zap.Error(err))
		return 0, err
	}
	s.logger.Info("清理爬取日志完成", zap.Time("before", before), zap.Int64("deleted", n))
	return n, nil
}
