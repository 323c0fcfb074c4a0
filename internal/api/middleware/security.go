package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	strictCSP = "default-src 'none'; frame-ancestors 'none'"
	// playground 页面从 jsdelivr 加载脚本与样式
	playgroundCSP = "default-src 'self'; script-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
		"style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; img-src 'self' data: https://cdn.jsdelivr.net; " +
		"font-src 'self' data: https://cdn.jsdelivr.net; connect-src 'self'"
)

// SecurityHeaders 安全 HTTP 头中间件；playgroundPath 下放宽 CSP
func SecurityHeaders(playgroundPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		if playgroundPath != "" && strings.HasPrefix(c.Request.URL.Path, playgroundPath) {
			c.Header("Content-Security-Policy", playgroundCSP)
		} else {
			c.Header("Content-Security-Policy", strictCSP)
		}

		c.Next()
	}
}
