package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"bidwatch/backend/internal/bidstatus"
	"bidwatch/backend/internal/dto"
	"bidwatch/backend/internal/model"
	"bidwatch/backend/internal/repository"
	pkgerrors "bidwatch/backend/pkg/errors"
)

// ── 我的投标模块业务错误 ──

var (
	ErrMyBidNotFound     = errors.New("投标记录不存在")
	ErrMyBidExists       = errors.New("该公告已在我的投标中")
	ErrInvalidStatus     = errors.New("无效的投标状态")
	ErrInvalidTransition = errors.New("不允许的状态变更")
	ErrInvalidClosingAt  = errors.New("截止时间格式无效")
)

// MyBidService 我的投标业务接口
type MyBidService interface {
	List(ctx context.Context, status string) ([]*dto.MyBid, error)
	Get(ctx context.Context, source string, nid int32) (*dto.MyBid, error)
	Create(ctx context.Context, caller *dto.Caller, source string, nid int32) (*dto.MyBid, error)
	Update(ctx context.Context, caller *dto.Caller, in *dto.MyBidInput) (*dto.MyBid, error)
	Delete(ctx context.Context, caller *dto.Caller, source string, nid int32) error
}

type myBidService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMyBidService 创建 MyBidService 实例
func NewMyBidService(repo *repository.Repository, logger *zap.Logger) MyBidService {
	return &myBidService{repo: repo, logger: logger}
}

// ────────────────────── List / Get ──────────────────────

func (s *myBidService) List(ctx context.Context, status string) ([]*dto.MyBid, error) {
	if status != "" {
		if _, err := bidstatus.Parse(status); err != nil {
			return nil, ErrInvalidStatus
		}
	}
	bids, err := s.repo.MyBid.List(ctx, status)
	if err != nil {
		s.logger.Error("列出投标失败", zap.String("status", status), zap.Error(err))
		return nil, err
	}

	result := make([]*dto.MyBid, 0, len(bids))
	for i := range bids {
		result = append(result, toMyBidResponse(&bids[i]))
	}
	return result, nil
}

func (s *myBidService) Get(ctx context.Context, source string, nid int32) (*dto.MyBid, error) {
	bid, err := s.find(ctx, s.repo, source, nid)
	if err != nil {
		return nil, err
	}
	return toMyBidResponse(bid), nil
}

// ────────────────────── Create ──────────────────────

// Create 复制公告信息并置为 progress，同时将公告标记为已选，二者同一事务
func (s *myBidService) Create(ctx context.Context, caller *dto.Caller, source string, nid int32) (*dto.MyBid, error) {
	if !canWrite(caller) {
		return nil, ErrNoPermission
	}
	source = normalizeSource(source)

	var bid *model.MyBid
	err := inTx(ctx, s.repo, s.logger, func(txRepo *repository.Repository) error {
		notice, err := txRepo.Notice.GetByID(ctx, source, int(nid))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoticeNotFound
			}
			return err
		}

		bid = &model.MyBid{
			Nid:       notice.Nid,
			Source:    source,
			Title:     notice.Title,
			OrgName:   notice.OrgName,
			DetailURL: notice.DetailURL,
			Status:    bidstatus.Progress,
			ClosingAt: notice.ClosingAt,
		}
		if err := txRepo.MyBid.Create(ctx, bid); err != nil {
			if pkgerrors.IsDuplicate(err) {
				return ErrMyBidExists
			}
			return err
		}

		_, err = txRepo.Notice.UpdateSelected(ctx, source, []int{notice.Nid}, model.NoticeSelected)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrNoticeNotFound) && !errors.Is(err, ErrMyBidExists) {
			s.logger.Error("创建投标失败", zap.String("source", source), zap.Int32("nid", nid), zap.Error(err))
		}
		return nil, err
	}
	return toMyBidResponse(bid), nil
}

// ────────────────────── Update ──────────────────────

// Update 校验状态流转；detail / memo 提供时整体替换
func (s *myBidService) Update(ctx context.Context, caller *dto.Caller, in *dto.MyBidInput) (*dto.MyBid, error) {
	if !canWrite(caller) {
		return nil, ErrNoPermission
	}
	source := normalizeSource(strOr(in.Source, ""))

	bid, err := s.find(ctx, s.repo, source, in.Nid)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		to, err := bidstatus.Parse(*in.Status)
		if err != nil {
			return nil, ErrInvalidStatus
		}
		if !bidstatus.CanTransition(bid.Status, to) {
			return nil, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, bid.Status, to)
		}
		bid.Status = to
	}
	if in.Detail != nil {
		if bid.Detail, err = toJSONColumn(in.Detail); err != nil {
			return nil, err
		}
	}
	if in.Memo != nil {
		if bid.Memo, err = toJSONColumn(in.Memo); err != nil {
			return nil, err
		}
	}
	if in.ClosingAt != nil {
		closing, err := parseClosingAt(*in.ClosingAt)
		if err != nil {
			return nil, err
		}
		bid.ClosingAt = closing
	}

	if err := s.repo.MyBid.Update(ctx, bid); err != nil {
		s.logger.Error("更新投标失败", zap.Int32("nid", in.Nid), zap.Error(err))
		return nil, err
	}
	return toMyBidResponse(bid), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除投标并恢复公告为正常状态，二者同一事务
func (s *myBidService) Delete(ctx context.Context, caller *dto.Caller, source string, nid int32) error {
	if !canWrite(caller) {
		return ErrNoPermission
	}
	source = normalizeSource(source)

	err := inTx(ctx, s.repo, s.logger, func(txRepo *repository.Repository) error {
		if _, err := s.find(ctx, txRepo, source, nid); err != nil {
			return err
		}
		if err := txRepo.MyBid.Delete(ctx, source, int(nid)); err != nil {
			return err
		}
		_, err := txRepo.Notice.UpdateSelected(ctx, source, []int{int(nid)}, model.NoticeNormal)
		return err
	})
	if err != nil && !errors.Is(err, ErrMyBidNotFound) {
		s.logger.Error("删除投标失败", zap.String("source", source), zap.Int32("nid", nid), zap.Error(err))
	}
	return err
}

func (s *myBidService) find(ctx context.Context, repo *repository.Repository, source string, nid int32) (*model.MyBid, error) {
	bid, err := repo.MyBid.GetByNid(ctx, normalizeSource(source), int(nid))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMyBidNotFound
		}
		s.logger.Error("查询投标失败", zap.Int32("nid", nid), zap.Error(err))
		return nil, err
	}
	return bid, nil
}

// ── 内部辅助 ──

func normalizeSource(source string) string {
	if source == "" {
		return model.SourceGov
	}
	return source
}

func strOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func toJSONColumn(j *dto.JSON) (datatypes.JSON, error) {
	if j.Value == nil {
		return nil, nil
	}
	b, err := json.Marshal(j.Value)
	if err != nil {
		return nil, fmt.Errorf("编码 JSON 字段失败: %w", err)
	}
	return datatypes.JSON(b), nil
}

func fromJSONColumn(col datatypes.JSON) *dto.JSON {
	if len(col) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(col, &v); err != nil {
		return nil
	}
	return dto.NewJSON(v)
}

// parseClosingAt 接受 "2006-01-02 15:04:05" 或 "2006-01-02"；空串清除
func parseClosingAt(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{dto.TimeLayout, dto.DateLayout, time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, ErrInvalidClosingAt
}

func toMyBidResponse(b *model.MyBid) *dto.MyBid {
	return &dto.MyBid{
		Mid:       int32(b.Mid),
		Nid:       int32(b.Nid),
		Source:    b.Source,
		Title:     b.Title,
		OrgName:   b.OrgName,
		DetailURL: b.DetailURL,
		Status:    b.Status,
		Detail:    fromJSONColumn(b.Detail),
		Memo:      fromJSONColumn(b.Memo),
		ClosingAt: formatTimePtr(b.ClosingAt, dto.TimeLayout),
		CreatedAt: formatTime(b.CreatedAt),
		UpdatedAt: formatTime(b.UpdatedAt),
	}
}
