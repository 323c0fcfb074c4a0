package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"bidwatch/backend/internal/backend"
	"bidwatch/backend/internal/dto"
	"bidwatch/backend/internal/model"
)

// ── 用户模块业务错误 ──

var (
	ErrUserSelfRoleChange = errors.New("不能修改自己的角色")
	ErrNoPermission       = errors.New("无权操作")
	ErrInvalidRole        = errors.New("无效的角色")
)

// UserService 用户业务接口，用户数据由外部认证服务持有
type UserService interface {
	List(ctx context.Context, caller *dto.Caller) ([]*dto.User, error)
	UpdateRole(ctx context.Context, caller *dto.Caller, id int32, role string) (*dto.User, error)
}

type userService struct {
	api    backend.Client
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(api backend.Client, logger *zap.Logger) UserService {
	return &userService{api: api, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, caller *dto.Caller) ([]*dto.User, error) {
	if !caller.HasRole(model.RoleAdmin, model.RoleManager) {
		return nil, ErrNoPermission
	}

	var users []*dto.User
	if err := s.api.Get(ctx, "/users", &users); err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, err
	}
	return users, nil
}

// ────────────────────── UpdateRole ──────────────────────

func (s *userService) UpdateRole(ctx context.Context, caller *dto.Caller, id int32, role string) (*dto.User, error) {
	if !caller.HasRole(model.RoleAdmin) {
		return nil, ErrNoPermission
	}
	if !model.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	if strconv.Itoa(int(id)) == caller.UserID {
		return nil, ErrUserSelfRoleChange
	}

	var user dto.User
	path := fmt.Sprintf("/users/%d/role", id)
	if err := s.api.Put(ctx, path, &dto.UpdateRoleRequest{Role: role}, &user); err != nil {
		s.logger.Error("修改用户角色失败", zap.Int32("id", id), zap.String("role", role), zap.Error(err))
		return nil, err
	}
	return &user, nil
}
