package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bidwatch/backend/config"
)

// 未配置输出目标时写标准输出
var defaultOutput = []string{"stdout"}

// NewLogger 根据 log 配置构建 zap 日志器
// format=console 为带颜色的开发格式，其余为 JSON；output 支持 stdout/stderr/文件路径
func NewLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别 %q: %w", cfg.Level, err)
	}

	zc := baseConfig(cfg.Format)
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = outputs(cfg.Output)
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.InitialFields = map[string]interface{}{"app": "bidwatch"}

	l, err := zc.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("构建日志器失败: %w", err)
	}
	return l, nil
}

func baseConfig(format string) zap.Config {
	if format == "console" {
		zc := zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		return zc
	}
	zc := zap.NewProductionConfig()
	zc.Sampling = nil
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.MessageKey = "msg"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.EncoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
	return zc
}

func outputs(paths []string) []string {
	var out []string
	for _, p := range paths {
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultOutput
	}
	return out
}
