package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"bidwatch/backend/internal/model"
)

// ScrapingLogRepository 爬取日志数据访问接口
type ScrapingLogRepository interface {
	ListLogs(ctx context.Context, since time.Time) ([]model.ScrapingLog, error)
	ListErrors(ctx context.Context, since time.Time) ([]model.ScrapingError, error)
	// Prune 删除 before 之前的日志与错误汇总，返回删除行数
	Prune(ctx context.Context, before time.Time) (int64, error)
}

type scrapingLogRepo struct {
	db *gorm.DB
}

// NewScrapingLogRepo 创建 ScrapingLogRepository 实例
func NewScrapingLogRepo(db *gorm.DB) ScrapingLogRepository {
	return &scrapingLogRepo{db: db}
}

func (r *scrapingLogRepo) ListLogs(ctx context.Context, since time.Time) ([]model.ScrapingLog, error) {
	var logs []model.ScrapingLog
	err := r.db.WithContext(ctx).
		Where("time >= ?", since).
		Order("time DESC, id DESC").
		Find(&logs).Error
	return logs, err
}

func (r *scrapingLogRepo) ListErrors(ctx context.Context, since time.Time) ([]model.ScrapingError, error) {
	var errs []model.ScrapingError
	err := r.db.WithContext(ctx).
		Where("time >= ?", since).
		Order("time DESC, id DESC").
		Find(&errs).Error
	return errs, err
}

func (r *scrapingLogRepo) Prune(ctx context.Context, before time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("time < ?", before).Delete(&model.ScrapingLog{})
		if res.Error != nil {
			return res.Error
		}
		total += res.RowsAffected

		res = tx.Where("time < ?", before).Delete(&model.ScrapingError{})
		if res.Error != nil {
			return res.Error
		}
		total += res.RowsAffected
		return nil
	})
	return total, err
}
