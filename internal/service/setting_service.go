package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"

	"bidwatch/backend/internal/backend"
	"bidwatch/backend/internal/dto"
)

// ── 爬取配置模块业务错误 ──

var (
	ErrOrgNameRequired  = errors.New("机关名不能为空")
	ErrKeywordsRequired = errors.New("关键词与分类不能为空")
	ErrPathRequired     = errors.New("路径名与路径值不能为空")
	ErrAppDefaultKey    = errors.New("区域与名称不能为空")
)

// SettingService 爬取配置业务接口；数据由 REST 后端持有
type SettingService interface {
	NoticeLists(ctx context.Context) ([]*dto.SettingsNoticeList, error)
	NoticeList(ctx context.Context, oid int32) (*dto.SettingsNoticeList, error)
	NoticeListByOrg(ctx context.Context, orgName string) (*dto.SettingsNoticeList, error)
	CreateNoticeList(ctx context.Context, in *dto.SettingsNoticeListInput) (*dto.SettingsNoticeList, error)
	UpdateNoticeList(ctx context.Context, oid int32, in *dto.SettingsNoticeListInput) (*dto.SettingsNoticeList, error)
	DeleteNoticeList(ctx context.Context, oid int32) error

	NoticeDetails(ctx context.Context) ([]*dto.SettingsNoticeDetail, error)
	NoticeDetail(ctx context.Context, oid int32) (*dto.SettingsNoticeDetail, error)
	NoticeDetailByOrg(ctx context.Context, orgName string) (*dto.SettingsNoticeDetail, error)
	CreateNoticeDetail(ctx context.Context, in *dto.SettingsNoticeDetailInput) (*dto.SettingsNoticeDetail, error)
	UpdateNoticeDetail(ctx context.Context, oid int32, in *dto.SettingsNoticeDetailInput) (*dto.SettingsNoticeDetail, error)
	DeleteNoticeDetail(ctx context.Context, oid int32) error

	NoticeCategories(ctx context.Context) ([]*dto.SettingsNoticeCategory, error)
	NoticeCategory(ctx context.Context, sn int32) (*dto.SettingsNoticeCategory, error)
	CreateNoticeCategory(ctx context.Context, in *dto.SettingsNoticeCategoryInput) (*dto.SettingsNoticeCategory, error)
	UpdateNoticeCategory(ctx context.Context, sn int32, in *dto.SettingsNoticeCategoryInput) (*dto.SettingsNoticeCategory, error)
	DeleteNoticeCategory(ctx context.Context, sn int32) error

	NasPaths(ctx context.Context) ([]*dto.SettingsNasPath, error)
	NasPath(ctx context.Context, id int32) (*dto.SettingsNasPath, error)
	CreateNasPath(ctx context.Context, in *dto.SettingsNasPathInput) (*dto.SettingsNasPath, error)
	UpdateNasPath(ctx context.Context, id int32, in *dto.SettingsNasPathInput) (*dto.SettingsNasPath, error)
	DeleteNasPath(ctx context.Context, id int32) error

	AppDefaults(ctx context.Context) ([]*dto.SettingsAppDefault, error)
	AppDefault(ctx context.Context, id int32) (*dto.SettingsAppDefault, error)
	CreateAppDefault(ctx context.Context, in *dto.SettingsAppDefaultInput) (*dto.SettingsAppDefault, error)
	UpdateAppDefault(ctx context.Context, id int32, in *dto.SettingsAppDefaultInput) (*dto.SettingsAppDefault, error)
	DeleteAppDefault(ctx context.Context, id int32) error

	// 分类检索由后端计算
	CategoryWeightSearch(ctx context.Context, req *dto.CategoryWeightSearchRequest) ([]*dto.CategoryNotice, error)
	FilterNoticeList(ctx context.Context, req *dto.FilterNoticeListRequest) ([]*dto.CategoryNotice, error)
	ParseKeywordWeights(ctx context.Context, s string) ([]*dto.KeywordWeight, error)
}

// restSet 一类配置记录在后端的 REST 端点：
// {base} 列表/创建，{base}/{key} 更新/删除，{one}/{key} 单条，{base}_by_org/{name} 按机关
type restSet[T any] struct {
	api    backend.Client
	logger *zap.Logger
	base   string
	one    string
	key    string
	setKey func(*T, int32)
}

func (r *restSet[T]) all(ctx context.Context) ([]*T, error) {
	var rows []*T
	if err := r.api.Get(ctx, r.base, &rows); err != nil {
		r.logger.Error("查询配置列表失败", zap.String("path", r.base), zap.Error(err))
		return nil, err
	}
	if rows == nil {
		rows = []*T{}
	}
	return rows, nil
}

func (r *restSet[T]) get(ctx context.Context, path string) (*T, error) {
	var row T
	if err := r.api.Get(ctx, path, &row); err != nil {
		r.logger.Error("查询配置失败", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	return &row, nil
}

func (r *restSet[T]) byKey(ctx context.Context, key int32) (*T, error) {
	return r.get(ctx, fmt.Sprintf("%s/%d", r.one, key))
}

func (r *restSet[T]) byOrg(ctx context.Context, orgName string) (*T, error) {
	return r.get(ctx, r.base+"_by_org/"+url.PathEscape(orgName))
}

// create 后端若在响应中返回主键则回填
func (r *restSet[T]) create(ctx context.Context, row T) (*T, error) {
	var raw json.RawMessage
	if err := r.api.Post(ctx, r.base, row, &raw); err != nil {
		r.logger.Error("创建配置失败", zap.String("path", r.base), zap.Error(err))
		return nil, err
	}
	var resp map[string]interface{}
	if json.Unmarshal(raw, &resp) == nil {
		if v, ok := resp[r.key].(float64); ok {
			r.setKey(&row, int32(v))
		}
	}
	return &row, nil
}

func (r *restSet[T]) update(ctx context.Context, key int32, row T) (*T, error) {
	path := fmt.Sprintf("%s/%d", r.base, key)
	r.setKey(&row, key)
	if err := r.api.Put(ctx, path, row, nil); err != nil {
		r.logger.Error("更新配置失败", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	return &row, nil
}

func (r *restSet[T]) remove(ctx context.Context, key int32) error {
	path := fmt.Sprintf("%s/%d", r.base, key)
	if err := r.api.Delete(ctx, path, nil); err != nil {
		r.logger.Error("删除配置失败", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}

type settingService struct {
	api    backend.Client
	logger *zap.Logger

	lists      *restSet[dto.SettingsNoticeList]
	details    *restSet[dto.SettingsNoticeDetail]
	categories *restSet[dto.SettingsNoticeCategory]
	nasPaths   *restSet[dto.SettingsNasPath]
	defaults   *restSet[dto.SettingsAppDefault]
}

// NewSettingService 创建 SettingService 实例
func NewSettingService(api backend.Client, logger *zap.Logger) SettingService {
	return &settingService{
		api:    api,
		logger: logger,
		lists: &restSet[dto.SettingsNoticeList]{
			api: api, logger: logger,
			base: "/settings_notice_list", one: "/settings_notice_list_by_oid", key: "oid",
			setKey: func(r *dto.SettingsNoticeList, k int32) { r.Oid = k },
		},
		details: &restSet[dto.SettingsNoticeDetail]{
			api: api, logger: logger,
			base: "/settings_notice_detail", one: "/settings_notice_detail_by_oid", key: "oid",
			setKey: func(r *dto.SettingsNoticeDetail, k int32) { r.Oid = k },
		},
		categories: &restSet[dto.SettingsNoticeCategory]{
			api: api, logger: logger,
			base: "/settings_notice_category", one: "/settings_notice_category", key: "sn",
			setKey: func(r *dto.SettingsNoticeCategory, k int32) { r.Sn = k },
		},
		nasPaths: &restSet[dto.SettingsNasPath]{
			api: api, logger: logger,
			base: "/settings_nas_path", one: "/settings_nas_path", key: "id",
			setKey: func(r *dto.SettingsNasPath, k int32) { r.ID = k },
		},
		defaults: &restSet[dto.SettingsAppDefault]{
			api: api, logger: logger,
			base: "/settings_app_default", one: "/settings_app_default", key: "id",
			setKey: func(r *dto.SettingsAppDefault, k int32) { r.ID = k },
		},
	}
}

// ────────────────────── Notice list ──────────────────────

func (s *settingService) NoticeLists(ctx context.Context) ([]*dto.SettingsNoticeList, error) {
	return s.lists.all(ctx)
}

func (s *settingService) NoticeList(ctx context.Context, oid int32) (*dto.SettingsNoticeList, error) {
	return s.lists.byKey(ctx, oid)
}

func (s *settingService) NoticeListByOrg(ctx context.Context, orgName string) (*dto.SettingsNoticeList, error) {
	return s.lists.byOrg(ctx, orgName)
}

func (s *settingService) CreateNoticeList(ctx context.Context, in *dto.SettingsNoticeListInput) (*dto.SettingsNoticeList, error) {
	if strings.TrimSpace(in.OrgName) == "" {
		return nil, ErrOrgNameRequired
	}
	return s.lists.create(ctx, in.Row())
}

func (s *settingService) UpdateNoticeList(ctx context.Context, oid int32, in *dto.SettingsNoticeListInput) (*dto.SettingsNoticeList, error) {
	if strings.TrimSpace(in.OrgName) == "" {
		return nil, ErrOrgNameRequired
	}
	return s.lists.update(ctx, oid, in.Row())
}

func (s *settingService) DeleteNoticeList(ctx context.Context, oid int32) error {
	return s.lists.remove(ctx, oid)
}

// ────────────────────── Notice detail ──────────────────────

func (s *settingService) NoticeDetails(ctx context.Context) ([]*dto.SettingsNoticeDetail, error) {
	return s.details.all(ctx)
}

func (s *settingService) NoticeDetail(ctx context.Context, oid int32) (*dto.SettingsNoticeDetail, error) {
	return s.details.byKey(ctx, oid)
}

func (s *settingService) NoticeDetailByOrg(ctx context.Context, orgName string) (*dto.SettingsNoticeDetail, error) {
	return s.details.byOrg(ctx, orgName)
}

func (s *settingService) CreateNoticeDetail(ctx context.Context, in *dto.SettingsNoticeDetailInput) (*dto.SettingsNoticeDetail, error) {
	if strings.TrimSpace(in.OrgName) == "" {
		return nil, ErrOrgNameRequired
	}
	return s.details.create(ctx, in.Row())
}

func (s *settingService) UpdateNoticeDetail(ctx context.Context, oid int32, in *dto.SettingsNoticeDetailInput) (*dto.SettingsNoticeDetail, error) {
	if strings.TrimSpace(in.OrgName) == "" {
		return nil, ErrOrgNameRequired
	}
	return s.details.update(ctx, oid, in.Row())
}

func (s *settingService) DeleteNoticeDetail(ctx context.Context, oid int32) error {
	return s.details.remove(ctx, oid)
}

// ────────────────────── Notice category ──────────────────────

// NoticeCategories 按 sn 升序
func (s *settingService) NoticeCategories(ctx context.Context) ([]*dto.SettingsNoticeCategory, error) {
	rows, err := s.categories.all(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Sn < rows[j].Sn })
	return rows, nil
}

func (s *settingService) NoticeCategory(ctx context.Context, sn int32) (*dto.SettingsNoticeCategory, error) {
	return s.categories.byKey(ctx, sn)
}

func (s *settingService) CreateNoticeCategory(ctx context.Context, in *dto.SettingsNoticeCategoryInput) (*dto.SettingsNoticeCategory, error) {
	if strings.TrimSpace(in.Keywords) == "" || strings.TrimSpace(in.Category) == "" {
		return nil, ErrKeywordsRequired
	}
	return s.categories.create(ctx, in.Row())
}

func (s *settingService) UpdateNoticeCategory(ctx context.Context, sn int32, in *dto.SettingsNoticeCategoryInput) (*dto.SettingsNoticeCategory, error) {
	if strings.TrimSpace(in.Keywords) == "" || strings.TrimSpace(in.Category) == "" {
		return nil, ErrKeywordsRequired
	}
	return s.categories.update(ctx, sn, in.Row())
}

func (s *settingService) DeleteNoticeCategory(ctx context.Context, sn int32) error {
	return s.categories.remove(ctx, sn)
}

// ────────────────────── NAS path ──────────────────────

func (s *settingService) NasPaths(ctx context.Context) ([]*dto.SettingsNasPath, error) {
	return s.nasPaths.all(ctx)
}

func (s *settingService) NasPath(ctx context.Context, id int32) (*dto.SettingsNasPath, error) {
	return s.nasPaths.byKey(ctx, id)
}

func (s *settingService) CreateNasPath(ctx context.Context, in *dto.SettingsNasPathInput) (*dto.SettingsNasPath, error) {
	if strings.TrimSpace(in.PathName) == "" || strings.TrimSpace(in.PathValue) == "" {
		return nil, ErrPathRequired
	}
	return s.nasPaths.create(ctx, in.Row())
}

func (s *settingService) UpdateNasPath(ctx context.Context, id int32, in *dto.SettingsNasPathInput) (*dto.SettingsNasPath, error) {
	if strings.TrimSpace(in.PathName) == "" || strings.TrimSpace(in.PathValue) == "" {
		return nil, ErrPathRequired
	}
	return s.nasPaths.update(ctx, id, in.Row())
}

func (s *settingService) DeleteNasPath(ctx context.Context, id int32) error {
	return s.nasPaths.remove(ctx, id)
}

// ────────────────────── App default ──────────────────────

func (s *settingService) AppDefaults(ctx context.Context) ([]*dto.SettingsAppDefault, error) {
	return s.defaults.all(ctx)
}

func (s *settingService) AppDefault(ctx context.Context, id int32) (*dto.SettingsAppDefault, error) {
	return s.defaults.byKey(ctx, id)
}

func (s *settingService) CreateAppDefault(ctx context.Context, in *dto.SettingsAppDefaultInput) (*dto.SettingsAppDefault, error) {
	if strings.TrimSpace(in.Area) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, ErrAppDefaultKey
	}
	return s.defaults.create(ctx, in.Row())
}

func (s *settingService) UpdateAppDefault(ctx context.Context, id int32, in *dto.SettingsAppDefaultInput) (*dto.SettingsAppDefault, error) {
	if strings.TrimSpace(in.Area) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, ErrAppDefaultKey
	}
	return s.defaults.update(ctx, id, in.Row())
}

func (s *settingService) DeleteAppDefault(ctx context.Context, id int32) error {
	return s.defaults.remove(ctx, id)
}

// ────────────────────── Category search (backend) ──────────────────────

func (s *settingService) CategoryWeightSearch(ctx context.Context, req *dto.CategoryWeightSearchRequest) ([]*dto.CategoryNotice, error) {
	return s.categoryNotices(ctx, "/category_weight_search", req)
}

func (s *settingService) FilterNoticeList(ctx context.Context, req *dto.FilterNoticeListRequest) ([]*dto.CategoryNotice, error) {
	return s.categoryNotices(ctx, "/filter_notice_list", req)
}

// categoryNotices 地区为空时填充 "미지정"
func (s *settingService) categoryNotices(ctx context.Context, path string, req interface{}) ([]*dto.CategoryNotice, error) {
	var rows []*dto.CategoryNotice
	if err := s.api.Post(ctx, path, req, &rows); err != nil {
		s.logger.Error("分类检索失败", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	result := make([]*dto.CategoryNotice, 0, len(rows))
	for _, r := range rows {
		if r == nil {
			continue
		}
		if r.Region == "" {
			r.Region = dto.UnassignedRegion
		}
		result = append(result, r)
	}
	return result, nil
}

func (s *settingService) ParseKeywordWeights(ctx context.Context, str string) ([]*dto.KeywordWeight, error) {
	var rows []*dto.KeywordWeight
	req := &dto.ParseKeywordWeightsRequest{KeywordWeightStr: str}
	if err := s.api.Post(ctx, "/parse_keyword_weights", req, &rows); err != nil {
		s.logger.Error("解析关键词权重失败", zap.Error(err))
		return nil, err
	}
	if rows == nil {
		rows = []*dto.KeywordWeight{}
	}
	return rows, nil
}
