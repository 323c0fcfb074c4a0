package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bidwatch/backend/internal/dto"
	"bidwatch/backend/pkg/response"
)

// RateLimiter 滑动窗口计数接口，由 pkg/redis 实现
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit 按调用者限流：已登录按用户 ID 计数，匿名按客户端 IP 计数
// 须挂在 BearerAuth 之后；limiter 为 nil 或出错时放行
func RateLimit(limiter RateLimiter, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	retryAfter := strconv.Itoa(int(window.Seconds()))

	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}

		key := rateKey(c)
		allowed, err := limiter.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("限流计数失败，放行请求", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", retryAfter)
			response.Error(c, http.StatusTooManyRequests, 10004, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}
		c.Next()
	}
}

func rateKey(c *gin.Context) string {
	if caller := dto.CallerFromContext(c.Request.Context()); caller != nil {
		return "rate_limit:user:" + caller.UserID + ":" + c.FullPath()
	}
	return "rate_limit:ip:" + c.ClientIP() + ":" + c.FullPath()
}
