package handler

import (
	"github.com/gin-gonic/gin"

	"bidwatch/backend/internal/dto"
	"bidwatch/backend/pkg/response"
)

// MustGetCaller 从请求上下文中安全提取调用者。
// 认证中间件未注入调用者时写入 401 响应并返回 false，调用方应直接 return。
func MustGetCaller(c *gin.Context) (*dto.Caller, bool) {
	caller := dto.CallerFromContext(c.Request.Context())
	if caller == nil || caller.UserID == "" {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return caller, true
}
