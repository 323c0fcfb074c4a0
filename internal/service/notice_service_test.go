package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"bidwatch/backend/internal/dto"
	"bidwatch/backend/internal/model"
	"bidwatch/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestNoticeService() (*noticeService, *mocks) {
	repo, m := newMockRepository()
	for _, n := range []*model.Notice{
		{Nid: 1, Title: "도시재생 기본계획", OrgName: "서울시", OrgRegion: "서울", Category: "공사"},
		{Nid: 2, Title: "도시재생 활성화 계획 용역", OrgName: "부산시", OrgRegion: "부산", Category: "용역"},
		{Nid: 3, Title: "도로 포장 공사", OrgName: "서울시", OrgRegion: "서울", Category: "공사"},
		{Nid: 4, Title: "도시재생 취소 공고", OrgName: "대구시", Category: "용역"},
		{Nid: 5, Title: "계획 수립", OrgName: "인천시", OrgRegion: "", Category: ""},
	} {
		m.notice.put(model.SourceGov, n)
	}
	svc := NewNoticeService(repo, zap.NewNop()).(*noticeService)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 15, 30, 0, 0, time.Local) }
	return svc, m
}

// ── Search 测试 ──

func TestNoticeService_Search_ScoreOrder(t *testing.T) {
	svc, _ := setupTestNoticeService()

	result, err := svc.Search(context.Background(), &dto.NoticeSearchRequest{
		Keywords: "도시재생*3, 계획*2",
		Nots:     "취소",
		MinPoint: 2,
	})
	if err != nil {
		t.Fatalf("Search 应成功: %v", err)
	}

	want := []struct {
		nid   int32
		score int32
	}{{2, 5}, {1, 5}, {5, 2}}
	if len(result) != len(want) {
		t.Fatalf("期望 %d 条结果，实际=%d", len(want), len(result))
	}
	for i, w := range want {
		if result[i].Nid != w.nid || result[i].Score != w.score {
			t.Errorf("第 %d 条期望 nid=%d score=%d，实际 nid=%d score=%d",
				i, w.nid, w.score, result[i].Nid, result[i].Score)
		}
	}
	if result[0].Source != model.SourceGov {
		t.Errorf("空来源应返回 gov，实际=%s", result[0].Source)
	}
}

func TestNoticeService_Search_Since(t *testing.T) {
	svc, m := setupTestNoticeService()

	svc.Search(context.Background(), &dto.NoticeSearchRequest{Keywords: "도시재생", Gap: 3})
	want := time.Date(2026, 10, 16, 0, 0, 0, 0, time.Local)
	if m.notice.lastQuery.Since == nil || !m.notice.lastQuery.Since.Equal(want) {
		t.Errorf("期望 since=%v，实际=%v", want, m.notice.lastQuery.Since)
	}

	svc.Search(context.Background(), &dto.NoticeSearchRequest{Keywords: "도시재생"})
	if m.notice.lastQuery.Since != nil {
		t.Error("gap=0 时不应限制日期")
	}
}

func TestNoticeService_Search_InvalidInput(t *testing.T) {
	svc, _ := setupTestNoticeService()
	ctx := context.Background()

	cases := []*dto.NoticeSearchRequest{
		{Keywords: ""},
		{Keywords: "도시*abc"},
		{Keywords: "도시", AddWhere: "1=1; DROP TABLE notices"},
	}
	for _, req := range cases {
		if _, err := svc.Search(ctx, req); !errors.Is(err, ErrInvalidSearch) {
			t.Errorf("%+v 期望 ErrInvalidSearch，实际: %v", req, err)
		}
	}
}

func TestNoticeService_Search_UnknownSource(t *testing.T) {
	svc, _ := setupTestNoticeService()

	_, err := svc.Search(context.Background(), &dto.NoticeSearchRequest{Keywords: "도시", Source: "kepco"})
	if !errors.Is(err, repository.ErrUnknownSource) {
		t.Errorf("期望 ErrUnknownSource，实际: %v", err)
	}
}

// ── List / Statistics 测试 ──

func TestNoticeService_List_ExcludedHidden(t *testing.T) {
	svc, _ := setupTestNoticeService()
	ctx := context.Background()

	n, err := svc.Exclude(ctx, userCaller, "", []int32{3, 99})
	if err != nil || n != 1 {
		t.Fatalf("Exclude 期望影响 1 行，实际 n=%d err=%v", n, err)
	}
	list, _ := svc.List(ctx, &dto.NoticeListRequest{Category: "공사"})
	if len(list) != 1 || list[0].Nid != 1 {
		t.Errorf("排除的公告不应出现在列表中，实际=%d 条", len(list))
	}

	svc.Restore(ctx, userCaller, "", []int32{3})
	list, _ = svc.List(ctx, &dto.NoticeListRequest{Category: "공사"})
	if len(list) != 2 {
		t.Errorf("恢复后应重新出现，实际=%d 条", len(list))
	}
}

func TestNoticeService_Exclude_ViewerDenied(t *testing.T) {
	svc, _ := setupTestNoticeService()

	if _, err := svc.Exclude(context.Background(), viewerCaller, "", []int32{1}); !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际: %v", err)
	}
}

func TestNoticeService_UpdateCategory(t *testing.T) {
	svc, m := setupTestNoticeService()
	ctx := context.Background()

	if _, err := svc.UpdateCategory(ctx, userCaller, "", []int32{5}, " "); !errors.Is(err, ErrCategoryMissing) {
		t.Errorf("期望 ErrCategoryMissing，实际: %v", err)
	}
	n, err := svc.UpdateCategory(ctx, userCaller, "", []int32{5}, "용역")
	if err != nil || n != 1 {
		t.Fatalf("UpdateCategory 期望影响 1 行，实际 n=%d err=%v", n, err)
	}
	if m.notice.notices[model.SourceGov][5].Category != "용역" {
		t.Error("分类应已更新")
	}
}

func TestNoticeService_Statistics(t *testing.T) {
	svc, _ := setupTestNoticeService()

	stats, err := svc.Statistics(context.Background(), "", 0, repository.StatByRegion)
	if err != nil {
		t.Fatalf("Statistics 应成功: %v", err)
	}
	got := map[string]int32{}
	for _, s := range stats {
		got[s.Label] = s.Count
	}
	if got["서울"] != 2 || got["부산"] != 1 || got[dto.UnassignedRegion] != 2 {
		t.Errorf("地区统计不正确: %v", got)
	}

	stats, _ = svc.Statistics(context.Background(), "", 0, "")
	got = map[string]int32{}
	for _, s := range stats {
		got[s.Label] = s.Count
	}
	if got["공사"] != 2 || got["용역"] != 2 {
		t.Errorf("未指定维度时应按分类统计: %v", got)
	}
}

func TestSinceDays(t *testing.T) {
	now := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	if got := sinceDays(now, 1); !got.Equal(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("期望 2026-02-28，实际=%v", got)
	}
	if sinceDays(now, 0) != nil || sinceDays(now, -1) != nil {
		t.Error("gap<=0 应返回 nil")
	}
}
