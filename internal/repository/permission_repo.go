package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bidwatch/backend/internal/model"
)

// PermissionRepository 角色权限矩阵数据访问接口
type PermissionRepository interface {
	List(ctx context.Context) ([]model.Permission, error)
	ListByRole(ctx context.Context, role string) ([]model.Permission, error)
	Get(ctx context.Context, role, resource string) (*model.Permission, error)
	// Upsert 按 (role, resource) 插入或覆盖四个动作开关
	Upsert(ctx context.Context, p *model.Permission) error
	Delete(ctx context.Context, id int) (int64, error)
}

type permissionRepo struct {
	db *gorm.DB
}

// NewPermissionRepo 创建 PermissionRepository 实例
func NewPermissionRepo(db *gorm.DB) PermissionRepository {
	return &permissionRepo{db: db}
}

func (r *permissionRepo) List(ctx context.Context) ([]model.Permission, error) {
	var perms []model.Permission
	err := r.db.WithContext(ctx).Order("role ASC, resource ASC").Find(&perms).Error
	return perms, err
}

func (r *permissionRepo) ListByRole(ctx context.Context, role string) ([]model.Permission, error) {
	var perms []model.Permission
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("resource ASC").
		Find(&perms).Error
	return perms, err
}

func (r *permissionRepo) Get(ctx context.Context, role, resource string) (*model.Permission, error) {
	var p model.Permission
	err := r.db.WithContext(ctx).
		Where("role = ? AND resource = ?", role, resource).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *permissionRepo) Upsert(ctx context.Context, p *model.Permission) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "role"}, {Name: "resource"}},
		DoUpdates: clause.AssignmentColumns([]string{"can_read", "can_create", "can_update", "can_delete", "updated_at"}),
	}).Create(p).Error
}

func (r *permissionRepo) Delete(ctx context.Context, id int) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Permission{})
	return res.RowsAffected, res.Error
}
