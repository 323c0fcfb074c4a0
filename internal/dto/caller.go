package dto

import (
	"context"
	"time"
)

// Caller 当前请求的调用方，来自已验证的 JWT
type Caller struct {
	UserID    string
	Email     string
	Name      string
	Role      string
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// HasRole 调用方是否具有给定角色之一
func (c *Caller) HasRole(roles ...string) bool {
	if c == nil {
		return false
	}
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

type callerKey struct{}

// WithCaller 把调用方放入请求上下文
func WithCaller(ctx context.Context, c *Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFromContext 取出调用方；匿名请求返回 nil
func CallerFromContext(ctx context.Context) *Caller {
	c, _ := ctx.Value(callerKey{}).(*Caller)
	return c
}
