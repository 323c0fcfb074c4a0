package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bidwatch/backend/config"
)

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := NewLogger(&config.LogConfig{Level: "debug", Format: format})
		if err != nil {
			t.Fatalf("format=%s 初始化失败: %v", format, err)
		}
		l.Debug("ok")
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "loud", Format: "json"}); err == nil {
		t.Error("无效的日志级别应返回错误")
	}
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := NewLogger(&config.LogConfig{Level: "info", Format: "json", Output: []string{path}})
	if err != nil {
		t.Fatalf("初始化失败: %v", err)
	}
	l.Info("scrape started")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"scrape started"`) || !strings.Contains(string(data), `"app":"bidwatch"`) {
		t.Errorf("日志内容不符合预期: %s", data)
	}
}

func TestOutputs_Default(t *testing.T) {
	got := outputs([]string{"", ""})
	if len(got) != 1 || got[0] != "stdout" {
		t.Errorf("期望默认输出 stdout，实际 %v", got)
	}
}
