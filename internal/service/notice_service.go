package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"bidwatch/backend/internal/dto"
	"bidwatch/backend/internal/model"
	"bidwatch/backend/internal/repository"
	"bidwatch/backend/internal/search"
)

// ── 公告模块业务错误 ──

var (
	ErrInvalidSearch   = errors.New("检索条件无效")
	ErrNoticeNotFound  = errors.New("公告不存在")
	ErrCategoryMissing = errors.New("分类不能为空")
)

// NoticeService 公告业务接口
type NoticeService interface {
	List(ctx context.Context, req *dto.NoticeListRequest) ([]*dto.Notice, error)
	Search(ctx context.Context, req *dto.NoticeSearchRequest) ([]*dto.Notice, error)
	Statistics(ctx context.Context, source string, gap int, unit string) ([]*dto.NoticeStat, error)
	Exclude(ctx context.Context, caller *dto.Caller, source string, nids []int32) (int32, error)
	Restore(ctx context.Context, caller *dto.Caller, source string, nids []int32) (int32, error)
	UpdateCategory(ctx context.Context, caller *dto.Caller, source string, nids []int32, category string) (int32, error)
}

type noticeService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewNoticeService 创建 NoticeService 实例
func NewNoticeService(repo *repository.Repository, logger *zap.Logger) NoticeService {
	return &noticeService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── List ──────────────────────

func (s *noticeService) List(ctx context.Context, req *dto.NoticeListRequest) ([]*dto.Notice, error) {
	notices, err := s.repo.Notice.List(ctx, req.Source, repository.NoticeFilter{
		Category: req.Category,
		Since:    sinceDays(s.now(), req.Gap),
	})
	if err != nil {
		s.logger.Error("列出公告失败", zap.String("source", req.Source), zap.Error(err))
		return nil, err
	}

	result := make([]*dto.Notice, 0, len(notices))
	for i := range notices {
		result = append(result, toNoticeResponse(&notices[i], req.Source, 0))
	}
	return result, nil
}

// ────────────────────── Search ──────────────────────

// Search 标题加权检索：keywords 计分，nots 排除，addWhere 附加白名单条件
func (s *noticeService) Search(ctx context.Context, req *dto.NoticeSearchRequest) ([]*dto.Notice, error) {
	weights, err := search.ParseKeywordWeights(req.Keywords)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSearch, err)
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSearch, search.ErrEmptyKeywords)
	}
	where, err := search.ParseAddWhere(req.AddWhere)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSearch, err)
	}

	rows, err := s.repo.Notice.Search(ctx, req.Source, repository.NoticeQuery{
		Weights:  weights,
		Nots:     search.ParseNots(req.Nots),
		MinPoint: req.MinPoint,
		Where:    where,
		Since:    sinceDays(s.now(), req.Gap),
	})
	if err != nil {
		s.logger.Error("检索公告失败",
			zap.String("source", req.Source),
			zap.String("keywords", req.Keywords),
			zap.Error(err),
		)
		return nil, err
	}

	result := make([]*dto.Notice, 0, len(rows))
	for i := range rows {
		result = append(result, toNoticeResponse(&rows[i].Notice, req.Source, rows[i].Score))
	}
	return result, nil
}

// ────────────────────── Statistics ──────────────────────

func (s *noticeService) Statistics(ctx context.Context, source string, gap int, unit string) ([]*dto.NoticeStat, error) {
	if unit == "" {
		unit = repository.StatByCategory
	}
	stats, err := s.repo.Notice.Statistics(ctx, source, sinceDays(s.now(), gap), unit)
	if err != nil {
		s.logger.Error("统计公告失败", zap.String("source", source), zap.String("unit", unit), zap.Error(err))
		return nil, err
	}

	result := make([]*dto.NoticeStat, 0, len(stats))
	for _, st := range stats {
		label := st.Label
		if label == "" {
			label = dto.UnassignedRegion
		}
		result = append(result, &dto.NoticeStat{Label: label, Count: int32(st.Count)})
	}
	return result, nil
}

// ────────────────────── Exclude / Restore / Category ──────────────────────

func (s *noticeService) Exclude(ctx context.Context, caller *dto.Caller, source string, nids []int32) (int32, error) {
	return s.updateSelected(ctx, caller, source, nids, model.NoticeExcluded)
}

func (s *noticeService) Restore(ctx context.Context, caller *dto.Caller, source string, nids []int32) (int32, error) {
	return s.updateSelected(ctx, caller, source, nids, model.NoticeNormal)
}

func (s *noticeService) updateSelected(ctx context.Context, caller *dto.Caller, source string, nids []int32, selected int) (int32, error) {
	if !canWrite(caller) {
		return 0, ErrNoPermission
	}
	n, err := s.repo.Notice.UpdateSelected(ctx, source, toInts(nids), selected)
	if err != nil {
		s.logger.Error("更新公告状态失败", zap.String("source", source), zap.Int("selected", selected), zap.Error(err))
		return 0, err
	}
	return int32(n), nil
}

func (s *noticeService) UpdateCategory(ctx context.Context, caller *dto.Caller, source string, nids []int32, category string) (int32, error) {
	if !canWrite(caller) {
		return 0, ErrNoPermission
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return 0, ErrCategoryMissing
	}
	n, err := s.repo.Notice.UpdateCategory(ctx, source, toInts(nids), category)
	if err != nil {
		s.logger.Error("更新公告分类失败", zap.String("source", source), zap.String("category", category), zap.Error(err))
		return 0, err
	}
	return int32(n), nil
}

// ── 内部辅助 ──

// sinceDays 今天零点往前 gap 天；gap <= 0 不限
func sinceDays(now time.Time, gap int) *time.Time {
	if gap <= 0 {
		return nil
	}
	y, m, d := now.Date()
	t := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -gap)
	return &t
}

func toInts(ids []int32) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		out = append(out, int(id))
	}
	return out
}

func toNoticeResponse(n *model.Notice, source string, score int) *dto.Notice {
	if source == "" {
		source = model.SourceGov
	}
	return &dto.Notice{
		Nid:            int32(n.Nid),
		Source:         source,
		Title:          n.Title,
		OrgName:        n.OrgName,
		DetailURL:      n.DetailURL,
		PostedDate:     formatTimePtr(n.PostedDate, dto.DateLayout),
		PostedBy:       n.PostedBy,
		Region:         n.OrgRegion,
		Registration:   n.Registration,
		Category:       n.Category,
		BidNo:          n.BidNo,
		Budget:         float64(n.Budget),
		Classification: n.Classification,
		ClosingAt:      formatTimePtr(n.ClosingAt, dto.TimeLayout),
		IsSelected:     int32(n.IsSelected),
		Score:          int32(score),
	}
}
