package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"bidwatch/backend/internal/dto"
	"bidwatch/backend/internal/model"
)

func setupTestDocService() (DocService, *mocks) {
	repo, m := newMockRepository()
	return NewDocService(repo, zap.NewNop()), m
}

func TestDocService_Create_DefaultMarkdown(t *testing.T) {
	svc, _ := setupTestDocService()

	man, err := svc.Create(context.Background(), managerCaller, &dto.ManualInput{
		Category: ptr(" 사용법 "),
		Title:    "검색 가이드",
		Markdown: ptr("- 키워드*3"),
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if man.Format != model.FormatMarkdown || !strings.Contains(man.Content, "<li>") {
		t.Errorf("手册默认按 Markdown 渲染，实际 format=%s content=%q", man.Format, man.Content)
	}
	if man.Category != "사용법" {
		t.Errorf("分类应去除空白，实际=%q", man.Category)
	}
}

func TestDocService_Create_Permission(t *testing.T) {
	svc, _ := setupTestDocService()

	if _, err := svc.Create(context.Background(), userCaller, &dto.ManualInput{Title: "t"}); !errors.Is(err, ErrNoPermission) {
		t.Errorf("普通用户期望 ErrNoPermission，实际: %v", err)
	}
}

func TestDocService_SearchAndOwnership(t *testing.T) {
	svc, _ := setupTestDocService()
	ctx := context.Background()

	man, _ := svc.Create(ctx, managerCaller, &dto.ManualInput{Title: "입찰 절차", Markdown: ptr("투찰 방법")})
	svc.Create(ctx, managerCaller, &dto.ManualInput{Title: "설정", Markdown: ptr("NAS 경로")})

	found, _ := svc.Search(ctx, "투찰")
	if len(found) != 1 || found[0].ID != man.ID {
		t.Errorf("应按正文检索，实际=%d 条", len(found))
	}
	empty, _ := svc.Search(ctx, "  ")
	if empty == nil || len(empty) != 0 {
		t.Errorf("空关键词应返回空列表，实际=%v", empty)
	}

	other := &dto.Caller{Email: "other-manager@bid.kr", Role: model.RoleManager}
	if _, err := svc.Update(ctx, other, man.ID, &dto.ManualInput{Title: "변경"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("期望 ErrForbidden，实际: %v", err)
	}
	if err := svc.Delete(ctx, adminCaller, man.ID); err != nil {
		t.Errorf("管理员删除应成功: %v", err)
	}
	if _, err := svc.Get(ctx, man.ID); !errors.Is(err, ErrManualNotFound) {
		t.Errorf("期望 ErrManualNotFound，实际: %v", err)
	}
}
