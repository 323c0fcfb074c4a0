package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bidwatch/backend/config"
	"bidwatch/backend/internal/api/graph"
	"bidwatch/backend/internal/api/handler"
	"bidwatch/backend/internal/api/router"
	"bidwatch/backend/internal/backend"
	"bidwatch/backend/internal/repository"
	"bidwatch/backend/internal/scheduler"
	"bidwatch/backend/internal/service"
	"bidwatch/backend/pkg/database"
	"bidwatch/backend/pkg/jwt"
	applogger "bidwatch/backend/pkg/logger"
	"bidwatch/backend/pkg/redis"
)

func main() {
	// 1. 加载配置（BID_CONFIG 可指定配置文件路径）
	cfg, err := config.Load(os.Getenv("BID_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，Token 黑名单与限流将不可用", zap.Error(err))
		rdb = nil
	}
	var blacklist service.TokenBlacklist
	if rdb != nil {
		blacklist = rdb
	}

	// 5. JWT 管理器与 REST 后端客户端
	jwtMgr := jwt.NewManager(&cfg.Auth)
	api := backend.NewClient(&cfg.Backend, logger)

	// 6. 依赖注入: Repository → Service → Schema/Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, api, jwtMgr, blacklist, logger)
	schema := graph.NewSchema(svc, logger)
	h := handler.NewHandler(svc, schema, logger)

	// 7. 爬取日志保留期清理
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	sched := scheduler.New(&cfg.Logs, svc.Log, logger)
	if err := sched.Start(ctx); err != nil {
		logger.Fatal("启动定时任务失败", zap.Error(err))
	}

	// 8. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// 爬虫检查与导出可能较慢，留出后端超时余量
		WriteTimeout: cfg.Backend.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	stop()
	sched.Stop()

	if err := sqlDB.Close(); err != nil {
		logger.Warn("关闭数据库连接失败", zap.Error(err))
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
