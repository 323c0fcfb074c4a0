package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"bidwatch/backend/internal/model"
	"bidwatch/backend/internal/search"
)

// ErrUnknownSource 未知的公告来源
var ErrUnknownSource = errors.New("未知的公告来源")

// NoticeFilter 公告列表过滤条件
type NoticeFilter struct {
	Category string
	Since    *time.Time // posted_date 下限，nil 表示不限
}

// NoticeQuery 公告加权检索条件
type NoticeQuery struct {
	Weights  []search.KeywordWeight
	Nots     []string
	MinPoint int
	Where    search.Expr // 已解析的附加条件
	Since    *time.Time
}

// 统计分组维度
const (
	StatByCategory = "category"
	StatByRegion   = "region"
	StatByOrg      = "org"
)

var statColumns = map[string]string{
	StatByCategory: "category",
	StatByRegion:   "org_region",
	StatByOrg:      "org_name",
}

// NoticeRepository 公告数据访问接口；source 决定读写 notices 还是 nara_notices
type NoticeRepository interface {
	GetByID(ctx context.Context, source string, nid int) (*model.Notice, error)
	List(ctx context.Context, source string, f NoticeFilter) ([]model.Notice, error)
	Search(ctx context.Context, source string, q NoticeQuery) ([]model.ScoredNotice, error)
	Statistics(ctx context.Context, source string, since *time.Time, unit string) ([]model.NoticeStat, error)
	UpdateSelected(ctx context.Context, source string, nids []int, selected int) (int64, error)
	UpdateCategory(ctx context.Context, source string, nids []int, category string) (int64, error)
}

type noticeRepo struct {
	db *gorm.DB
}

// NewNoticeRepo 创建 NoticeRepository 实例
func NewNoticeRepo(db *gorm.DB) NoticeRepository {
	return &noticeRepo{db: db}
}

func (r *noticeRepo) table(ctx context.Context, source string) (*gorm.DB, error) {
	name := model.NoticeTable(source)
	if name == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
	return r.db.WithContext(ctx).Table(name), nil
}

func (r *noticeRepo) GetByID(ctx context.Context, source string, nid int) (*model.Notice, error) {
	db, err := r.table(ctx, source)
	if err != nil {
		return nil, err
	}
	var n model.Notice
	if err := db.Where("nid = ?", nid).First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *noticeRepo) List(ctx context.Context, source string, f NoticeFilter) ([]model.Notice, error) {
	db, err := r.table(ctx, source)
	if err != nil {
		return nil, err
	}

	db = db.Where("is_selected <> ?", model.NoticeExcluded)
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if f.Since != nil {
		db = db.Where("posted_date >= ?", *f.Since)
	}

	var notices []model.Notice
	err = db.Order("posted_date DESC, nid DESC").Find(&notices).Error
	return notices, err
}

// Search 按标题关键词加权评分，保留 score >= MinPoint 的行，
// 以 score 降序、nid 降序排列
func (r *noticeRepo) Search(ctx context.Context, source string, q NoticeQuery) ([]model.ScoredNotice, error) {
	db, err := r.table(ctx, source)
	if err != nil {
		return nil, err
	}

	score, err := search.ScoreExpr("title", q.Weights)
	if err != nil {
		return nil, err
	}

	db = db.Select("*, "+score.SQL+" AS score", score.Args...).
		Where("is_selected <> ?", model.NoticeExcluded)
	if not := search.NotExpr("title", q.Nots); not.SQL != "" {
		db = db.Where(not.SQL, not.Args...)
	}
	if q.Where.SQL != "" {
		db = db.Where(q.Where.SQL, q.Where.Args...)
	}
	if q.Since != nil {
		db = db.Where("posted_date >= ?", *q.Since)
	}

	var rows []model.ScoredNotice
	err = db.Having("score >= ?", q.MinPoint).
		Order("score DESC, nid DESC").
		Find(&rows).Error
	return rows, err
}

func (r *noticeRepo) Statistics(ctx context.Context, source string, since *time.Time, unit string) ([]model.NoticeStat, error) {
	column, ok := statColumns[unit]
	if !ok {
		return nil, fmt.Errorf("不支持的统计维度: %q", unit)
	}
	db, err := r.table(ctx, source)
	if err != nil {
		return nil, err
	}

	db = db.Select(column+" AS label, COUNT(*) AS count").
		Where("is_selected <> ?", model.NoticeExcluded)
	if since != nil {
		db = db.Where("posted_date >= ?", *since)
	}

	var stats []model.NoticeStat
	err = db.Group(column).Order("count DESC, label ASC").Scan(&stats).Error
	return stats, err
}

func (r *noticeRepo) UpdateSelected(ctx context.Context, source string, nids []int, selected int) (int64, error) {
	if len(nids) == 0 {
		return 0, nil
	}
	db, err := r.table(ctx, source)
	if err != nil {
		return 0, err
	}
	res := db.Where("nid IN ?", nids).Update("is_selected", selected)
	return res.RowsAffected, res.Error
}

func (r *noticeRepo) UpdateCategory(ctx context.Context, source string, nids []int, category string) (int64, error) {
	if len(nids) == 0 {
		return 0, nil
	}
	db, err := r.table(ctx, source)
	if err != nil {
		return 0, err
	}
	res := db.Where("nid IN ?", nids).Update("category", category)
	return res.RowsAffected, res.Error
}
