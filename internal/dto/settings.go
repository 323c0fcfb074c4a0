package dto

import "encoding/json"

// ── 爬取配置 DTO ──
// Go 字段名即 GraphQL 字段名（camelCase），json 标签即后端 REST 字段名（snake_case）。
// 后端缺失或为 null 的字段解码后保持零值：字符串 ""，页码 0；use 缺失时为 1。

// SettingsNoticeList 列表页爬取配置
type SettingsNoticeList struct {
	Oid             int32  `json:"oid,omitempty"`
	OrgName         string `json:"org_name"`
	CrawlURL        string `json:"crawl_url"`
	Iframe          string `json:"iframe"`
	RowXpath        string `json:"row_xpath"`
	Paging          string `json:"paging"`
	StartPage       int32  `json:"start_page"`
	EndPage         int32  `json:"end_page"`
	Login           string `json:"login"`
	Title           string `json:"title"`
	DetailURL       string `json:"detail_url"`
	PostedDate      string `json:"posted_date"`
	PostedBy        string `json:"posted_by"`
	CompanyInCharge string `json:"company_in_charge"`
	OrgRegion       string `json:"org_region"`
	Registration    string `json:"registration"`
	ExcludeItems    string `json:"exclude_items"`
	Use             int32  `json:"use"`
}

// SettingsNoticeListInput 列表页爬取配置写入请求
type SettingsNoticeListInput struct {
	OrgName         string
	CrawlURL        *string
	Iframe          *string
	RowXpath        *string
	Paging          *string
	StartPage       *int32
	EndPage         *int32
	Login           *string
	Title           *string
	DetailURL       *string
	PostedDate      *string
	PostedBy        *string
	CompanyInCharge *string
	OrgRegion       *string
	Registration    *string
	ExcludeItems    *string
	Use             *int32
}

// Row 填充默认值后转换为后端请求体
func (in *SettingsNoticeListInput) Row() SettingsNoticeList {
	return SettingsNoticeList{
		OrgName:         in.OrgName,
		CrawlURL:        str(in.CrawlURL),
		Iframe:          str(in.Iframe),
		RowXpath:        str(in.RowXpath),
		Paging:          str(in.Paging),
		StartPage:       i32(in.StartPage, 0),
		EndPage:         i32(in.EndPage, 0),
		Login:           str(in.Login),
		Title:           str(in.Title),
		DetailURL:       str(in.DetailURL),
		PostedDate:      str(in.PostedDate),
		PostedBy:        str(in.PostedBy),
		CompanyInCharge: str(in.CompanyInCharge),
		OrgRegion:       str(in.OrgRegion),
		Registration:    str(in.Registration),
		ExcludeItems:    str(in.ExcludeItems),
		Use:             i32(in.Use, 1),
	}
}

// UnmarshalJSON 后端缺失 use 时视为启用
func (s *SettingsNoticeList) UnmarshalJSON(b []byte) error {
	type plain SettingsNoticeList
	p := plain{Use: 1}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*s = SettingsNoticeList(p)
	return nil
}

// SettingsNoticeDetail 详情页爬取配置
type SettingsNoticeDetail struct {
	Oid       int32  `json:"oid,omitempty"`
	OrgName   string `json:"org_name"`
	Title     string `json:"title"`
	NoticeDiv string `json:"notice_div"`
	NoticeNum string `json:"notice_num"`
	OrgDept   string `json:"org_dept"`
	OrgMan    string `json:"org_man"`
	OrgTel    string `json:"org_tel"`
	Body      string `json:"body"`
	FileName  string `json:"file_name"`
	FileURL   string `json:"file_url"`
	Preview   string `json:"preview"`
	NoticeID  string `json:"notice_id"`
	SampleURL string `json:"sample_url"`
	Down      string `json:"down"`
	Use       int32  `json:"use"`
}

// UnmarshalJSON 后端缺失 use 时视为启用
func (s *SettingsNoticeDetail) UnmarshalJSON(b []byte) error {
	type plain SettingsNoticeDetail
	p := plain{Use: 1}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*s = SettingsNoticeDetail(p)
	return nil
}

// SettingsNoticeDetailInput 详情页爬取配置写入请求
type SettingsNoticeDetailInput struct {
	OrgName   string
	Title     *string
	NoticeDiv *string
	NoticeNum *string
	OrgDept   *string
	OrgMan    *string
	OrgTel    *string
	Body      *string
	FileName  *string
	FileURL   *string
	Preview   *string
	NoticeID  *string
	SampleURL *string
	Down      *string
	Use       *int32
}

// Row 填充默认值后转换为后端请求体
func (in *SettingsNoticeDetailInput) Row() SettingsNoticeDetail {
	return SettingsNoticeDetail{
		OrgName:   in.OrgName,
		Title:     str(in.Title),
		NoticeDiv: str(in.NoticeDiv),
		NoticeNum: str(in.NoticeNum),
		OrgDept:   str(in.OrgDept),
		OrgMan:    str(in.OrgMan),
		OrgTel:    str(in.OrgTel),
		Body:      str(in.Body),
		FileName:  str(in.FileName),
		FileURL:   str(in.FileURL),
		Preview:   str(in.Preview),
		NoticeID:  str(in.NoticeID),
		SampleURL: str(in.SampleURL),
		Down:      str(in.Down),
		Use:       i32(in.Use, 1),
	}
}

// SettingsNoticeCategory 分类关键词规则
type SettingsNoticeCategory struct {
	Sn       int32  `json:"sn,omitempty"`
	Keywords string `json:"keywords"`
	Nots     string `json:"nots"`
	MinPoint int32  `json:"min_point"`
	Category string `json:"category"`
	Creator  string `json:"creator"`
	Memo     string `json:"memo"`
}

// SettingsNoticeCategoryInput 分类关键词规则写入请求
type SettingsNoticeCategoryInput struct {
	Keywords string
	Nots     *string
	MinPoint *int32
	Category string
	Creator  *string
	Memo     *string
}

// Row 填充默认值后转换为后端请求体
func (in *SettingsNoticeCategoryInput) Row() SettingsNoticeCategory {
	return SettingsNoticeCategory{
		Keywords: in.Keywords,
		Nots:     str(in.Nots),
		MinPoint: i32(in.MinPoint, 0),
		Category: in.Category,
		Creator:  str(in.Creator),
		Memo:     str(in.Memo),
	}
}

// SettingsNasPath NAS 存储路径配置
type SettingsNasPath struct {
	ID        int32  `json:"id,omitempty"`
	PathName  string `json:"path_name"`
	PathValue string `json:"path_value"`
	Area      string `json:"area"`
	Depth     int32  `json:"depth"`
	FolderID  string `json:"folder_id"`
	Remark    string `json:"remark"`
}

// NasPathDisabled area 为该值时路径视为停用
const NasPathDisabled = "disabled"

// IsActive area 不为 "disabled" 即为启用
func (p *SettingsNasPath) IsActive() bool {
	return p.Area != NasPathDisabled
}

// SettingsNasPathInput NAS 路径写入请求
type SettingsNasPathInput struct {
	PathName  string
	PathValue string
	Area      *string
	Depth     *int32
	FolderID  *string
	Remark    *string
}

// Row 填充默认值后转换为后端请求体
func (in *SettingsNasPathInput) Row() SettingsNasPath {
	return SettingsNasPath{
		PathName:  in.PathName,
		PathValue: in.PathValue,
		Area:      str(in.Area),
		Depth:     i32(in.Depth, 0),
		FolderID:  str(in.FolderID),
		Remark:    str(in.Remark),
	}
}

// SettingsAppDefault 应用默认值
type SettingsAppDefault struct {
	ID     int32  `json:"id,omitempty"`
	Area   string `json:"area"`
	Name   string `json:"name"`
	Value  string `json:"value"`
	Remark string `json:"remark"`
}

// SettingsAppDefaultInput 应用默认值写入请求
type SettingsAppDefaultInput struct {
	Area   string
	Name   string
	Value  *string
	Remark *string
}

// Row 填充默认值后转换为后端请求体
func (in *SettingsAppDefaultInput) Row() SettingsAppDefault {
	return SettingsAppDefault{
		Area:   in.Area,
		Name:   in.Name,
		Value:  str(in.Value),
		Remark: str(in.Remark),
	}
}

// ── 分类加权检索（后端计算）──

// CategoryNotice 分类检索命中的公告
// org_region 为空时由服务层填充 "미지정"
type CategoryNotice struct {
	Nid        int32   `json:"nid"`
	Title      string  `json:"title"`
	OrgName    string  `json:"org_name"`
	DetailURL  string  `json:"detail_url"`
	PostedDate string  `json:"posted_date"`
	PostedBy   string  `json:"posted_by"`
	Category   string  `json:"category"`
	Region     string  `json:"org_region"`
	Score      float64 `json:"score"`
}

// UnassignedRegion 地区缺失时的占位值
const UnassignedRegion = "미지정"

// CategoryWeightSearchRequest POST /category_weight_search 请求体
type CategoryWeightSearchRequest struct {
	Keywords string `json:"keywords"`
	MinPoint int32  `json:"min_point"`
	AddWhere string `json:"add_where"`
}

// FilterNoticeListRequest POST /filter_notice_list 请求体
type FilterNoticeListRequest struct {
	Nots   string `json:"not_str"`
	DayGap int32  `json:"day_gap"`
	Field  string `json:"field"`
}

// ParseKeywordWeightsRequest POST /parse_keyword_weights 请求体
type ParseKeywordWeightsRequest struct {
	KeywordWeightStr string `json:"keyword_weight_str"`
}
