package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"bidwatch/backend/internal/dto"
	"bidwatch/backend/internal/model"
	"bidwatch/backend/internal/repository"
)

// ── 权限模块业务错误 ──

var (
	ErrPermissionNotFound = errors.New("权限记录不存在")
	ErrResourceRequired   = errors.New("资源名不能为空")
)

// PermissionService 角色权限矩阵业务接口
type PermissionService interface {
	List(ctx context.Context) ([]*dto.Permission, error)
	ListByRole(ctx context.Context, role string) ([]*dto.Permission, error)
	Upsert(ctx context.Context, caller *dto.Caller, in *dto.PermissionInput) (*dto.Permission, error)
	Delete(ctx context.Context, caller *dto.Caller, id int32) error
}

type permissionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPermissionService 创建 PermissionService 实例
func NewPermissionService(repo *repository.Repository, logger *zap.Logger) PermissionService {
	return &permissionService{repo: repo, logger: logger}
}

func (s *permissionService) List(ctx context.Context) ([]*dto.Permission, error) {
	perms, err := s.repo.Permission.List(ctx)
	if err != nil {
		s.logger.Error("列出权限失败", zap.Error(err))
		return nil, err
	}
	return toPermissionResponses(perms), nil
}

func (s *permissionService) ListByRole(ctx context.Context, role string) ([]*dto.Permission, error) {
	if !model.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	perms, err := s.repo.Permission.ListByRole(ctx, role)
	if err != nil {
		s.logger.Error("按角色列出权限失败", zap.String("role", role), zap.Error(err))
		return nil, err
	}
	return toPermissionResponses(perms), nil
}

// ────────────────────── Upsert ──────────────────────

func (s *permissionService) Upsert(ctx context.Context, caller *dto.Caller, in *dto.PermissionInput) (*dto.Permission, error) {
	if !caller.HasRole(model.RoleAdmin) {
		return nil, ErrNoPermission
	}
	if !model.ValidRole(in.Role) {
		return nil, ErrInvalidRole
	}
	resource := strings.TrimSpace(in.Resource)
	if resource == "" {
		return nil, ErrResourceRequired
	}

	read, create, update, del := in.Flags()
	p := &model.Permission{
		Role:      in.Role,
		Resource:  resource,
		CanRead:   read,
		CanCreate: create,
		CanUpdate: update,
		CanDelete: del,
	}
	if err := s.repo.Permission.Upsert(ctx, p); err != nil {
		s.logger.Error("写入权限失败", zap.String("role", in.Role), zap.String("resource", resource), zap.Error(err))
		return nil, err
	}

	// ON DUPLICATE KEY UPDATE 不保证回填主键，重新读取
	saved, err := s.repo.Permission.Get(ctx, in.Role, resource)
	if err != nil {
		s.logger.Error("读取权限失败", zap.String("role", in.Role), zap.String("resource", resource), zap.Error(err))
		return nil, err
	}
	return toPermissionResponse(saved), nil
}

// ────────────────────── Delete ──────────────────────

func (s *permissionService) Delete(ctx context.Context, caller *dto.Caller, id int32) error {
	if !caller.HasRole(model.RoleAdmin) {
		return ErrNoPermission
	}
	n, err := s.repo.Permission.Delete(ctx, int(id))
	if err != nil {
		s.logger.Error("删除权限失败", zap.Int32("id", id), zap.Error(err))
		return err
	}
	if n == 0 {
		return ErrPermissionNotFound
	}
	return nil
}

// ── 内部辅助 ──

func toPermissionResponse(p *model.Permission) *dto.Permission {
	return &dto.Permission{
		ID:        int32(p.ID),
		Role:      p.Role,
		Resource:  p.Resource,
		CanRead:   p.CanRead,
		CanCreate: p.CanCreate,
		CanUpdate: p.CanUpdate,
		CanDelete: p.CanDelete,
		UpdatedAt: p.UpdatedAt.Format(dto.TimeLayout),
	}
}

func toPermissionResponses(perms []model.Permission) []*dto.Permission {
	result := make([]*dto.Permission, 0, len(perms))
	for i := range perms {
		result = append(result, toPermissionResponse(&perms[i]))
	}
	return result
}
