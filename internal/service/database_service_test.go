package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"bidwatch/backend/internal/repository"
)

func setupTestDatabaseService() (DatabaseService, *mocks) {
	repo, m := newMockRepository()
	return NewDatabaseService(repo, 50, zap.NewNop()), m
}

func TestNormalizeStatement(t *testing.T) {
	accepted := map[string]string{
		"SELECT * FROM notices;":          "SELECT * FROM notices",
		"  select nid from notices  ":     "select nid from notices",
		"SHOW TABLES":                     "SHOW TABLES",
		"desc notices":                    "desc notices",
		"EXPLAIN SELECT 1":                "EXPLAIN SELECT 1",
		"SELECT\n  nid\nFROM notices;;  ": "SELECT\n  nid\nFROM notices",
	}
	for in, want := range accepted {
		got, err := normalizeStatement(in)
		if err != nil {
			t.Errorf("%q 应通过，实际错误: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("%q 期望 %q，实际 %q", in, want, got)
		}
	}

	rejected := []string{
		"DELETE FROM notices",
		"UPDATE notices SET title = ''",
		"SELECT 1; DROP TABLE notices",
		"SELECT * FROM notices INTO OUTFILE '/tmp/x'",
		"SELECTED",
		"  ",
	}
	for _, in := range rejected {
		if _, err := normalizeStatement(in); err == nil {
			t.Errorf("%q 应被拒绝", in)
		}
	}
	if _, err := normalizeStatement(" ; "); !errors.Is(err, ErrStatementRequired) {
		t.Errorf("空语句期望 ErrStatementRequired，实际: %v", err)
	}
}

func TestDatabaseService_Query_AdminOnly(t *testing.T) {
	svc, m := setupTestDatabaseService()

	if _, err := svc.Query(context.Background(), managerCaller, "SELECT 1"); !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际: %v", err)
	}
	if _, err := svc.Query(context.Background(), nil, "SELECT 1"); !errors.Is(err, ErrNoPermission) {
		t.Errorf("未登录期望 ErrNoPermission，实际: %v", err)
	}
	if m.database.lastStmt != "" {
		t.Error("权限不足不应执行查询")
	}
}

func TestDatabaseService_Query_Result(t *testing.T) {
	svc, m := setupTestDatabaseService()
	ts := time.Date(2026, 10, 1, 9, 30, 0, 0, time.Local)
	m.database.result = &repository.QueryRows{
		Columns:   []string{"nid", "title", "scraped_at"},
		Rows:      []map[string]interface{}{{"nid": int64(1), "title": "공사", "scraped_at": ts}},
		Truncated: true,
	}

	res, err := svc.Query(context.Background(), adminCaller, "SELECT nid, title, scraped_at FROM notices;")
	if err != nil {
		t.Fatalf("Query 应成功: %v", err)
	}
	if m.database.lastStmt != "SELECT nid, title, scraped_at FROM notices" || m.database.lastMax != 50 {
		t.Errorf("应去掉分号并带行数上限，实际 stmt=%q max=%d", m.database.lastStmt, m.database.lastMax)
	}
	if res.RowCount != 1 || !res.Truncated || len(res.Columns) != 3 {
		t.Errorf("结果元信息不正确: %+v", res)
	}
	rows := res.Rows.Value.([]interface{})
	row := rows[0].(map[string]interface{})
	if row["scraped_at"] != "2026-10-01 09:30:00" {
		t.Errorf("时间列应格式化为字符串，实际=%v", row["scraped_at"])
	}
}

func TestDatabaseService_Tables_Grouped(t *testing.T) {
	svc, m := setupTestDatabaseService()
	m.database.columns = []repository.ColumnMeta{
		{TableName: "my_bids", ColumnName: "mid", ColumnType: "int", IsNullable: "NO", ColumnKey: "PRI"},
		{TableName: "my_bids", ColumnName: "memo", ColumnType: "json", IsNullable: "YES"},
		{TableName: "notices", ColumnName: "nid", ColumnType: "int", IsNullable: "NO", ColumnKey: "PRI"},
	}

	tables, err := svc.Tables(context.Background(), adminCaller)
	if err != nil {
		t.Fatalf("Tables 应成功: %v", err)
	}
	if len(tables) != 2 || len(tables[0].Columns) != 2 || tables[1].Name != "notices" {
		t.Fatalf("应按表分组，实际=%d 张表", len(tables))
	}
	if !tables[0].Columns[1].Nullable || tables[0].Columns[0].Nullable || tables[0].Columns[0].Key != "PRI" {
		t.Errorf("列信息不正确: %+v %+v", tables[0].Columns[0], tables[0].Columns[1])
	}
}
