package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"bidwatch/backend/internal/backend"
	"bidwatch/backend/internal/dto"
	"bidwatch/backend/pkg/jwt"
)

// ── 认证模块业务错误 ──

var (
	ErrUnauthenticated = errors.New("未登录")
	ErrTokenInvalid    = errors.New("Token 无效或已过期")
)

// TokenBlacklist 已注销 Token 的存储（Redis）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService 认证业务接口，登录/注册/密码等透传给外部认证服务
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthPayload, error)
	Logout(ctx context.Context, caller *dto.Caller) (*dto.AuthPayload, error)
	Register(ctx context.Context, in *dto.RegisterInput) (*dto.AuthPayload, error)
	ResetPassword(ctx context.Context, email string) (*dto.AuthPayload, error)
	ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) (*dto.AuthPayload, error)
	UpdateProfile(ctx context.Context, in *dto.ProfileInput) (*dto.AuthPayload, error)
	ValidateToken(ctx context.Context, token string) (*dto.AuthPayload, error)
	CurrentUser(ctx context.Context) (*dto.User, error)
}

type authService struct {
	api       backend.Client
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例；blacklist 可为 nil
func NewAuthService(
	api backend.Client,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		api:       api,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

func (s *authService) post(ctx context.Context, path string, body interface{}, op string) (*dto.AuthPayload, error) {
	var out dto.AuthPayload
	if err := s.api.Post(ctx, path, body, &out); err != nil {
		s.logger.Error(op+"失败", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	return &out, nil
}

// ────────────────────── Login / Register ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthPayload, error) {
	return s.post(ctx, "/auth/login", req, "登录")
}

func (s *authService) Register(ctx context.Context, in *dto.RegisterInput) (*dto.AuthPayload, error) {
	return s.post(ctx, "/auth/register", in, "注册")
}

func (s *authService) ResetPassword(ctx context.Context, email string) (*dto.AuthPayload, error) {
	return s.post(ctx, "/auth/reset-password", map[string]string{"email": email}, "重置密码")
}

// ────────────────────── Logout ──────────────────────

// Logout 通知认证服务注销，并把 Token ID 拉黑到过期为止
func (s *authService) Logout(ctx context.Context, caller *dto.Caller) (*dto.AuthPayload, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}

	payload, err := s.post(ctx, "/auth/logout", nil, "注销")
	if err != nil {
		return nil, err
	}

	if s.blacklist != nil && caller.TokenID != "" {
		ttl := time.Until(caller.ExpiresAt)
		if err := s.blacklist.BlacklistToken(ctx, caller.TokenID, ttl); err != nil {
			// 认证服务已注销，黑名单失败只影响本地提前拒绝
			s.logger.Warn("Token 加入黑名单失败", zap.String("jti", caller.TokenID), zap.Error(err))
		}
	}
	return payload, nil
}

// ────────────────────── Password / Profile ──────────────────────

func (s *authService) ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) (*dto.AuthPayload, error) {
	var out dto.AuthPayload
	if err := s.api.Put(ctx, "/auth/password", req, &out); err != nil {
		s.logger.Error("修改密码失败", zap.Error(err))
		return nil, err
	}
	return &out, nil
}

func (s *authService) UpdateProfile(ctx context.Context, in *dto.ProfileInput) (*dto.AuthPayload, error) {
	var out dto.AuthPayload
	if err := s.api.Put(ctx, "/auth/profile", in, &out); err != nil {
		s.logger.Error("更新个人资料失败", zap.Error(err))
		return nil, err
	}
	return &out, nil
}

// ────────────────────── Token ──────────────────────

// ValidateToken 先用共享密钥本地校验签名与有效期，再交由认证服务确认
func (s *authService) ValidateToken(ctx context.Context, token string) (*dto.AuthPayload, error) {
	if _, err := s.jwtMgr.ParseToken(token); err != nil {
		return nil, ErrTokenInvalid
	}
	return s.post(ctx, "/auth/validate", map[string]string{"token": token}, "校验 Token")
}

func (s *authService) CurrentUser(ctx context.Context) (*dto.User, error) {
	if backend.TokenFromContext(ctx) == "" {
		return nil, ErrUnauthenticated
	}
	var out dto.AuthPayload
	if err := s.api.Get(ctx, "/auth/me", &out); err != nil {
		s.logger.Error("查询当前用户失败", zap.Error(err))
		return nil, err
	}
	if out.User == nil {
		return nil, ErrUnauthenticated
	}
	return out.User, nil
}
