package repository

import (
	"context"

	"gorm.io/gorm"

	"bidwatch/backend/internal/model"
)

// MyBidRepository 我的投标数据访问接口
type MyBidRepository interface {
	Create(ctx context.Context, bid *model.MyBid) error
	GetByNid(ctx context.Context, source string, nid int) (*model.MyBid, error)
	List(ctx context.Context, status string) ([]model.MyBid, error)
	Update(ctx context.Context, bid *model.MyBid) error
	Delete(ctx context.Context, source string, nid int) error
}

type myBidRepo struct {
	db *gorm.DB
}

// NewMyBidRepo 创建 MyBidRepository 实例
func NewMyBidRepo(db *gorm.DB) MyBidRepository {
	return &myBidRepo{db: db}
}

func (r *myBidRepo) Create(ctx context.Context, bid *model.MyBid) error {
	return r.db.WithContext(ctx).Create(bid).Error
}

func (r *myBidRepo) GetByNid(ctx context.Context, source string, nid int) (*model.MyBid, error) {
	var bid model.MyBid
	err := r.db.WithContext(ctx).
		Where("source = ? AND nid = ?", source, nid).
		First(&bid).Error
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// List status 为空时返回全部
func (r *myBidRepo) List(ctx context.Context, status string) ([]model.MyBid, error) {
	var bids []model.MyBid
	db := r.db.WithContext(ctx)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("closing_at IS NULL, closing_at ASC, mid DESC").Find(&bids).Error
	return bids, err
}

func (r *myBidRepo) Update(ctx context.Context, bid *model.MyBid) error {
	return r.db.WithContext(ctx).Save(bid).Error
}

func (r *myBidRepo) Delete(ctx context.Context, source string, nid int) error {
	return r.db.WithContext(ctx).
		Where("source = ? AND nid = ?", source, nid).
		Delete(&model.MyBid{}).Error
}
