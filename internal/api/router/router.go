package router

import (
	"context"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bidwatch/backend/config"
	"bidwatch/backend/internal/api/handler"
	"bidwatch/backend/internal/api/middleware"
	"bidwatch/backend/pkg/jwt"
	"bidwatch/backend/pkg/redis"
)

const (
	graphqlPath    = "/graphql"
	playgroundPath = "/playground"
)

// Setup 初始化并返回 Gin 路由引擎；rdb 为 nil 时黑名单与限流降级
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	// nil 指针不能直接赋给接口
	var (
		blacklist middleware.TokenBlacklist
		limiter   middleware.RateLimiter
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	secPath := ""
	if cfg.Server.Playground {
		secPath = playgroundPath
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders(secPath))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		status := gin.H{"status": "ok", "redis": "disabled"}
		if rdb != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()
			status["redis"] = "up"
			if err := rdb.Ping(ctx); err != nil {
				status["redis"] = "down"
			}
		}
		c.JSON(http.StatusOK, status)
	})

	if cfg.Server.Playground {
		r.GET(playgroundPath, gin.WrapF(playground.Handler("bidwatch", graphqlPath)))
	}

	authed := r.Group("")
	authed.Use(middleware.BearerAuth(jwtMgr, blacklist, logger))
	authed.Use(middleware.RateLimit(limiter, cfg.RateLimit.Limit, cfg.RateLimit.Window, logger))
	{
		// GraphQL：认证可选，权限在 resolver 中检查
		authed.POST(graphqlPath, middleware.BodyLimit(cfg.Server.BodyLimit), h.GraphQL.Serve)

		api := authed.Group("/api")
		{
			auth := api.Group("/auth")
			{
				auth.POST("/login", middleware.BodyLimit(cfg.Server.BodyLimit), h.Auth.Login)
				auth.POST("/logout", middleware.RequireAuth(), h.Auth.Logout)
				auth.GET("/me", middleware.RequireAuth(), h.Auth.GetCurrentUser)
			}

			export := api.Group("/export")
			export.Use(middleware.RequireAuth())
			{
				export.GET("/notices.xlsx", h.Export.ExportNotices)
				export.GET("/mybids.xlsx", h.Export.ExportMyBids)
				export.GET("/mybids.ics", h.Export.ExportMyBidCalendar)
			}
		}
	}

	return r
}
