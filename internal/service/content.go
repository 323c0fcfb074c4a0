package service

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"bidwatch/backend/internal/dto"
	"bidwatch/backend/internal/model"
)

// ── 正文渲染与归属校验（帖子 / 评论 / 手册共用）──

var (
	ErrInvalidFormat = errors.New("无效的正文格式")
	ErrTitleRequired = errors.New("标题不能为空")
	ErrForbidden     = errors.New("只能修改自己的内容")
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// renderBody 规范化正文：markdown 格式时服务端渲染 HTML，两种形式一并保存
func renderBody(b dto.Body, defaultFormat string) (dto.Body, error) {
	format := strings.ToLower(strings.TrimSpace(b.Format))
	if format == "" {
		format = defaultFormat
	}

	switch format {
	case model.FormatHTML:
		return dto.Body{Content: b.Content, Markdown: b.Markdown, Format: format}, nil
	case model.FormatMarkdown:
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(b.Markdown), &buf); err != nil {
			return dto.Body{}, fmt.Errorf("渲染 Markdown 失败: %w", err)
		}
		return dto.Body{Content: buf.String(), Markdown: b.Markdown, Format: format}, nil
	default:
		return dto.Body{}, ErrInvalidFormat
	}
}

// canWrite 已登录且非只读角色
func canWrite(caller *dto.Caller) bool {
	return caller != nil && !caller.HasRole(model.RoleViewer)
}

// canModify 作者本人或管理员
func canModify(caller *dto.Caller, ownerEmail string) bool {
	if caller == nil {
		return false
	}
	if caller.HasRole(model.RoleAdmin) {
		return true
	}
	return ownerEmail != "" && strings.EqualFold(caller.Email, ownerEmail)
}

func formatTime(t time.Time) string {
	return t.Format(dto.TimeLayout)
}

// formatTimePtr 空时间返回 ""
func formatTimePtr(t *time.Time, layout string) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(layout)
}
