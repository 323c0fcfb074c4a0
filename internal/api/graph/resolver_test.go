package graph

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"bidwatch/backend/internal/backend"
	"bidwatch/backend/internal/dto"
	"bidwatch/backend/internal/repository"
	"bidwatch/backend/internal/service"
)

// ────────────────────── 测试辅助 ──────────────────────

var errFakeNetwork = errors.New("connection refused")

// fakeAPI 按 "METHOD path" 返回预置 JSON；err 非空时所有请求失败
type fakeAPI struct {
	responses map[string]string
	err       error
}

func (f *fakeAPI) do(method, path string, out interface{}) error {
	if f.err != nil {
		return f.err
	}
	body, ok := f.responses[method+" "+path]
	if !ok {
		return &backend.StatusError{Method: method, Path: path, Status: 404}
	}
	if out == nil || body == "" {
		return nil
	}
	return json.Unmarshal([]byte(body), out)
}

func (f *fakeAPI) Get(_ context.Context, path string, out interface{}) error {
	return f.do("GET", path, out)
}

func (f *fakeAPI) Post(_ context.Context, path string, _, out interface{}) error {
	return f.do("POST", path, out)
}

func (f *fakeAPI) Put(_ context.Context, path string, _, out interface{}) error {
	return f.do("PUT", path, out)
}

func (f *fakeAPI) Delete(_ context.Context, path string, out interface{}) error {
	return f.do("DELETE", path, out)
}

func newTestSchemaService(api backend.Client) *service.Service {
	logger := zap.NewNop()
	repo := &repository.Repository{}
	return &service.Service{
		Auth:     service.NewAuthService(api, nil, nil, logger),
		User:     service.NewUserService(api, logger),
		Notice:   service.NewNoticeService(repo, logger),
		Setting:  service.NewSettingService(api, logger),
		Spider:   service.NewSpiderService(api, logger),
		Database: service.NewDatabaseService(repo, 10, logger),
	}
}

type gqlResult struct {
	data   map[string]interface{}
	errors []gqlErr
}

type gqlErr struct {
	message string
	code    interface{}
}

func run(t *testing.T, api backend.Client, ctx context.Context, query string) gqlResult {
	t.Helper()
	schema := NewSchema(newTestSchemaService(api), zap.NewNop())
	resp := schema.Exec(ctx, query, "", nil)

	var res gqlResult
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &res.data); err != nil {
			t.Fatalf("解析响应失败: %v", err)
		}
	}
	for _, e := range resp.Errors {
		res.errors = append(res.errors, gqlErr{message: e.Message, code: e.Extensions["code"]})
	}
	return res
}

// ────────────────────── 查询失败返回空值 ──────────────────────

func TestSettingsAll_RESTFailureReturnsEmptyList(t *testing.T) {
	api := &fakeAPI{err: errFakeNetwork}
	res := run(t, api, context.Background(), `{
		settingsNoticeListAll { oid }
		settingsNoticeDetailAll { oid }
		settingsNoticeCategoryAll { sn }
		settingsNasPathAll { id }
		settingsAppDefaultAll { id }
		settingsNoticeCategoryWeightSearch(keywords: "공사*3") { nid }
		settingsNoticeCategoryFilterNoticeList(nots: "취소", dayGap: 7) { nid }
	}`)

	if len(res.errors) != 0 {
		t.Fatalf("期望无错误，实际 %+v", res.errors)
	}
	for _, field := range []string{
		"settingsNoticeListAll", "settingsNoticeDetailAll", "settingsNoticeCategoryAll",
		"settingsNasPathAll", "settingsAppDefaultAll",
		"settingsNoticeCategoryWeightSearch", "settingsNoticeCategoryFilterNoticeList",
	} {
		rows, ok := res.data[field].([]interface{})
		if !ok {
			t.Errorf("%s 期望返回列表，实际 %v", field, res.data[field])
			continue
		}
		if len(rows) != 0 {
			t.Errorf("%s 期望空列表，实际 %d 条", field, len(rows))
		}
	}
}

func TestSettingsNoticeCategorySearch_RegionAndOrgName(t *testing.T) {
	rows := `[
		{"nid": 1, "title": "도로 공사", "org_name": "조달청", "org_region": "서울"},
		{"nid": 2, "title": "설계 용역", "org_name": "국토부", "org_region": ""},
		{"nid": 3, "title": "감리", "org_name": "LH"}
	]`
	api := &fakeAPI{responses: map[string]string{
		"POST /filter_notice_list":     rows,
		"POST /category_weight_search": rows,
	}}
	res := run(t, api, context.Background(), `{
		settingsNoticeCategoryFilterNoticeList(nots: "취소", dayGap: 7, field: "title") { nid orgName region }
		settingsNoticeCategoryWeightSearch(keywords: "공사*3", minPoint: 1) { nid orgName region }
	}`)

	if len(res.errors) != 0 {
		t.Fatalf("期望无错误，实际 %+v", res.errors)
	}
	wantOrg := []string{"조달청", "국토부", "LH"}
	wantRegion := []string{"서울", "미지정", "미지정"}
	for _, field := range []string{"settingsNoticeCategoryFilterNoticeList", "settingsNoticeCategoryWeightSearch"} {
		got, ok := res.data[field].([]interface{})
		if !ok || len(got) != 3 {
			t.Fatalf("%s 期望 3 条，实际 %v", field, res.data[field])
		}
		for i, item := range got {
			row := item.(map[string]interface{})
			if row["orgName"] != wantOrg[i] {
				t.Errorf("%s[%d] 期望 orgName=%s，实际 %v", field, i, wantOrg[i], row["orgName"])
			}
			if row["region"] != wantRegion[i] {
				t.Errorf("%s[%d] 期望 region=%s，实际 %v", field, i, wantRegion[i], row["region"])
			}
		}
	}
}

func TestSettingsOne_RESTFailureReturnsNull(t *testing.T) {
	api := &fakeAPI{err: errFakeNetwork}
	res := run(t, api, context.Background(), `{
		settingsNoticeListOne(oid: 1) { oid }
		settingsNoticeListByOrg(orgName: "조달청") { oid }
		settingsNoticeDetailOne(oid: 1) { oid }
		settingsNoticeDetailByOrg(orgName: "조달청") { oid }
		settingsNoticeCategoryOne(sn: 1) { sn }
		settingsNasPathOne(id: 1) { id }
		settingsAppDefaultOne(id: 1) { id }
	}`)

	if len(res.errors) != 0 {
		t.Fatalf("期望无错误，实际 %+v", res.errors)
	}
	for field, v := range res.data {
		if v != nil {
			t.Errorf("%s 期望 null，实际 %v", field, v)
		}
	}
	if len(res.data) != 7 {
		t.Errorf("期望 7 个字段，实际 %d", len(res.data))
	}
}

// ────────────────────── 变更失败返回固定文案 ──────────────────────

func TestSettingsMutations_RESTFailureFixedMessage(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"列表创建", `mutation { settingsNoticeListCreate(input: {orgName: "조달청"}) { oid } }`, "Failed to create notice list settings"},
		{"列表更新", `mutation { settingsNoticeListUpdate(oid: 1, input: {orgName: "조달청"}) { oid } }`, "Failed to update notice list settings"},
		{"列表删除", `mutation { settingsNoticeListDelete(oid: 1) }`, "Failed to delete notice list settings"},
		{"详情创建", `mutation { settingsNoticeDetailCreate(input: {orgName: "조달청"}) { oid } }`, "Failed to create notice detail settings"},
		{"详情更新", `mutation { settingsNoticeDetailUpdate(oid: 1, input: {orgName: "조달청"}) { oid } }`, "Failed to update notice detail settings"},
		{"详情删除", `mutation { settingsNoticeDetailDelete(oid: 1) }`, "Failed to delete notice detail settings"},
		{"分类创建", `mutation { settingsNoticeCategoryCreate(input: {keywords: "공사", category: "공사"}) { sn } }`, "Failed to create notice category settings"},
		{"分类更新", `mutation { settingsNoticeCategoryUpdate(sn: 1, input: {keywords: "공사", category: "공사"}) { sn } }`, "Failed to update notice category settings"},
		{"分类删除", `mutation { settingsNoticeCategoryDelete(sn: 1) }`, "Failed to delete notice category settings"},
		{"NAS 创建", `mutation { settingsNasPathCreate(input: {pathName: "base", pathValue: "/mnt"}) { id } }`, "Failed to create NAS path settings"},
		{"NAS 更新", `mutation { settingsNasPathUpdate(id: 1, input: {pathName: "base", pathValue: "/mnt"}) { id } }`, "Failed to update NAS path settings"},
		{"NAS 删除", `mutation { settingsNasPathDelete(id: 1) }`, "Failed to delete NAS path settings"},
		{"默认值创建", `mutation { settingsAppDefaultCreate(input: {area: "ui", name: "theme"}) { id } }`, "Failed to create app default settings"},
		{"默认值更新", `mutation { settingsAppDefaultUpdate(id: 1, input: {area: "ui", name: "theme"}) { id } }`, "Failed to update app default settings"},
		{"默认值删除", `mutation { settingsAppDefaultDelete(id: 1) }`, "Failed to delete app default settings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, &fakeAPI{err: errFakeNetwork}, context.Background(), tt.query)
			if len(res.errors) != 1 {
				t.Fatalf("期望 1 个错误，实际 %+v", res.errors)
			}
			if res.errors[0].message != tt.want {
				t.Errorf("期望 %q，实际 %q", tt.want, res.errors[0].message)
			}
			if res.errors[0].code != CodeInternal {
				t.Errorf("期望 code=%s，实际 %v", CodeInternal, res.errors[0].code)
			}
		})
	}
}

func TestSettingsMutation_BackendStatusMapsCode(t *testing.T) {
	// 未预置响应时 fakeAPI 返回 404
	res := run(t, &fakeAPI{}, context.Background(), `mutation { settingsNasPathDelete(id: 9) }`)
	if len(res.errors) != 1 {
		t.Fatalf("期望 1 个错误，实际 %+v", res.errors)
	}
	if res.errors[0].message != "Failed to delete NAS path settings" {
		t.Errorf("文案不符: %q", res.errors[0].message)
	}
	if res.errors[0].code != CodeNotFound {
		t.Errorf("期望 code=%s，实际 %v", CodeNotFound, res.errors[0].code)
	}
}

func TestSettingsMutation_ValidationError(t *testing.T) {
	res := run(t, &fakeAPI{}, context.Background(), `mutation { settingsNoticeListCreate(input: {orgName: "  "}) { oid } }`)
	if len(res.errors) != 1 {
		t.Fatalf("期望 1 个错误，实际 %+v", res.errors)
	}
	if res.errors[0].message != service.ErrOrgNameRequired.Error() {
		t.Errorf("期望 %q，实际 %q", service.ErrOrgNameRequired.Error(), res.errors[0].message)
	}
	if res.errors[0].code != CodeBadRequest {
		t.Errorf("期望 code=%s，实际 %v", CodeBadRequest, res.errors[0].code)
	}
}

// ────────────────────── 字段映射 ──────────────────────

func TestSettingsNoticeListAll_Defaults(t *testing.T) {
	api := &fakeAPI{responses: map[string]string{
		"GET /settings_notice_list": `[{"oid": 1, "org_name": "조달청"}]`,
	}}
	res := run(t, api, context.Background(), `{ settingsNoticeListAll { oid orgName crawlUrl rowXpath startPage endPage use } }`)
	if len(res.errors) != 0 {
		t.Fatalf("期望无错误，实际 %+v", res.errors)
	}
	rows := res.data["settingsNoticeListAll"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("期望 1 条，实际 %d", len(rows))
	}
	row := rows[0].(map[string]interface{})
	if row["orgName"] != "조달청" {
		t.Errorf("期望 orgName=조달청，实际 %v", row["orgName"])
	}
	if row["crawlUrl"] != "" || row["rowXpath"] != "" {
		t.Errorf("缺省字符串应为空串，实际 crawlUrl=%v rowXpath=%v", row["crawlUrl"], row["rowXpath"])
	}
	if row["startPage"] != float64(0) || row["endPage"] != float64(0) {
		t.Errorf("缺省页码应为 0，实际 start=%v end=%v", row["startPage"], row["endPage"])
	}
	if row["use"] != float64(1) {
		t.Errorf("缺省 use 应为 1，实际 %v", row["use"])
	}
}

func TestSettingsNasPathAll_IsActive(t *testing.T) {
	api := &fakeAPI{responses: map[string]string{
		"GET /settings_nas_path": `[{"id": 1, "area": "disabled"}, {"id": 2, "area": "seoul"}]`,
	}}
	res := run(t, api, context.Background(), `{ settingsNasPathAll { id isActive } }`)
	if len(res.errors) != 0 {
		t.Fatalf("期望无错误，实际 %+v", res.errors)
	}
	rows := res.data["settingsNasPathAll"].([]interface{})
	want := map[float64]bool{1: false, 2: true}
	for _, r := range rows {
		row := r.(map[string]interface{})
		id := row["id"].(float64)
		if row["isActive"] != want[id] {
			t.Errorf("id=%v 期望 isActive=%v，实际 %v", id, want[id], row["isActive"])
		}
	}
}

func TestSettingsNoticeCategoryAll_SortedBySn(t *testing.T) {
	api := &fakeAPI{responses: map[string]string{
		"GET /settings_notice_category": `[{"sn": 3}, {"sn": 1}, {"sn": 2}]`,
	}}
	res := run(t, api, context.Background(), `{ settingsNoticeCategoryAll { sn } }`)
	rows := res.data["settingsNoticeCategoryAll"].([]interface{})
	if len(rows) != 3 {
		t.Fatalf("期望 3 条，实际 %d", len(rows))
	}
	for i, r := range rows {
		if sn := r.(map[string]interface{})["sn"]; sn != float64(i+1) {
			t.Errorf("位置 %d 期望 sn=%d，实际 %v", i, i+1, sn)
		}
	}
}

// ────────────────────── 认证 ──────────────────────

func TestLogin_FailureReturnsEnvelope(t *testing.T) {
	res := run(t, &fakeAPI{err: errFakeNetwork}, context.Background(),
		`mutation { login(email: "a@bid.kr", password: "pw") { success message token } }`)
	if len(res.errors) != 0 {
		t.Fatalf("认证失败不应产生 GraphQL 错误，实际 %+v", res.errors)
	}
	payload := res.data["login"].(map[string]interface{})
	if payload["success"] != false {
		t.Errorf("期望 success=false，实际 %v", payload["success"])
	}
	if payload["message"] != msgLoginFailed {
		t.Errorf("期望 message=%q，实际 %v", msgLoginFailed, payload["message"])
	}
	if payload["token"] != nil {
		t.Errorf("期望 token=null，实际 %v", payload["token"])
	}
}

func TestLogin_Passthrough(t *testing.T) {
	api := &fakeAPI{responses: map[string]string{
		"POST /auth/login": `{"success": true, "message": "ok", "token": "t-1", "user": {"id": 7, "email": "a@bid.kr", "role": "user"}}`,
	}}
	res := run(t, api, context.Background(),
		`mutation { login(email: "a@bid.kr", password: "pw") { success token user { id email role } } }`)
	payload := res.data["login"].(map[string]interface{})
	if payload["success"] != true || payload["token"] != "t-1" {
		t.Errorf("登录结果不符: %v", payload)
	}
	user := payload["user"].(map[string]interface{})
	if user["id"] != float64(7) || user["role"] != "user" {
		t.Errorf("用户信息不符: %v", user)
	}
}

func TestCurrentUser_AnonymousIsNull(t *testing.T) {
	res := run(t, &fakeAPI{}, context.Background(), `{ currentUser { id } }`)
	if len(res.errors) != 0 {
		t.Fatalf("期望无错误，实际 %+v", res.errors)
	}
	if res.data["currentUser"] != nil {
		t.Errorf("匿名请求期望 null，实际 %v", res.data["currentUser"])
	}
}

// ────────────────────── 客户端错误 ──────────────────────

func TestNoticesSearch_InvalidKeywords(t *testing.T) {
	res := run(t, &fakeAPI{}, context.Background(), `{ noticesSearch(keywords: " , ") { nid } }`)
	if len(res.errors) != 1 {
		t.Fatalf("期望 1 个错误，实际 %+v", res.errors)
	}
	if res.errors[0].code != CodeBadRequest {
		t.Errorf("期望 code=%s，实际 %v", CodeBadRequest, res.errors[0].code)
	}
}

func TestUsers_NonManagerForbidden(t *testing.T) {
	ctx := dto.WithCaller(context.Background(), &dto.Caller{UserID: "3", Role: "user"})
	res := run(t, &fakeAPI{}, ctx, `{ users { id } }`)
	if len(res.errors) != 1 || res.errors[0].code != CodeForbidden {
		t.Fatalf("期望 FORBIDDEN 错误，实际 %+v", res.errors)
	}
}

func TestDatabaseQuery_AdminOnly(t *testing.T) {
	res := run(t, &fakeAPI{}, context.Background(), `{ databaseQuery(sql: "SELECT 1") { rowCount } }`)
	if len(res.errors) != 1 || res.errors[0].code != CodeForbidden {
		t.Fatalf("期望 FORBIDDEN 错误，实际 %+v", res.errors)
	}
}

func TestDatabaseQuery_RejectsWrite(t *testing.T) {
	ctx := dto.WithCaller(context.Background(), &dto.Caller{UserID: "1", Role: "admin"})
	res := run(t, &fakeAPI{}, ctx, `{ databaseQuery(sql: "DELETE FROM notices") { rowCount } }`)
	if len(res.errors) != 1 {
		t.Fatalf("期望 1 个错误，实际 %+v", res.errors)
	}
	if res.errors[0].message != service.ErrStatementNotRead.Error() {
		t.Errorf("期望 %q，实际 %q", service.ErrStatementNotRead.Error(), res.errors[0].message)
	}
}

func TestSpiderCheckFetchList_FailureIsNull(t *testing.T) {
	res := run(t, &fakeAPI{err: errFakeNetwork}, context.Background(), `{ spiderCheckFetchList(orgName: "조달청") }`)
	if len(res.errors) != 0 {
		t.Fatalf("期望无错误，实际 %+v", res.errors)
	}
	if v, ok := res.data["spiderCheckFetchList"]; !ok || v != nil {
		t.Errorf("期望 null，实际 %v", v)
	}
}

func TestSpiderScrapeList_FixedMessage(t *testing.T) {
	ctx := dto.WithCaller(context.Background(), &dto.Caller{UserID: "1", Role: "admin"})
	res := run(t, &fakeAPI{err: errFakeNetwork}, ctx, `mutation { spiderScrapeList(orgNames: ["조달청"]) }`)
	if len(res.errors) != 1 || res.errors[0].message != "Failed to start scraping" {
		t.Fatalf("期望固定文案，实际 %+v", res.errors)
	}
}
