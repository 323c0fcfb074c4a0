package dto

// ── 公告模块 DTO ──

// Notice 公告响应
type Notice struct {
	Nid            int32
	Source         string
	Title          string
	OrgName        string
	DetailURL      string
	PostedDate     string
	PostedBy       string
	Region         string
	Registration   string
	Category       string
	BidNo          string
	Budget         float64
	Classification string
	ClosingAt      string
	IsSelected     int32
	Score          int32
}

// NoticeListRequest 公告列表查询参数
type NoticeListRequest struct {
	Source   string
	Category string
	Gap      int
}

// NoticeSearchRequest 加权检索参数
type NoticeSearchRequest struct {
	Keywords string
	Nots     string
	MinPoint int
	AddWhere string
	Source   string
	Gap      int
}

// NoticeStat 分组统计
type NoticeStat struct {
	Label string
	Count int32
}

// KeywordWeight 关键词权重（后端解析结果）
type KeywordWeight struct {
	Keyword string `json:"keyword"`
	Weight  int32  `json:"weight"`
}
