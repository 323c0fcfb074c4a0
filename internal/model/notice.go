package model

import "time"

// 公告来源：政府机关公告表与 나라장터 公告表结构相同
const (
	SourceGov  = "gov"
	SourceNara = "nara"
)

// 公告 is_selected 状态
const (
	NoticeExcluded = -1 // 已排除
	NoticeNormal   = 0  // 正常
	NoticeSelected = 1  // 已加入我的投标
)

// NoticeTable 返回来源对应的表名，未知来源返回空串
func NoticeTable(source string) string {
	switch source {
	case SourceGov, "":
		return "notices"
	case SourceNara:
		return "nara_notices"
	default:
		return ""
	}
}

// Notice 公告表，对应 notices / nara_notices，由外部爬虫写入
type Notice struct {
	Nid            int        `gorm:"primaryKey;autoIncrement"         json:"nid"`
	Title          string     `gorm:"type:varchar(500);not null"       json:"title"`
	OrgName        string     `gorm:"type:varchar(100);not null"       json:"org_name"`
	DetailURL      string     `gorm:"column:detail_url;type:varchar(1000)" json:"detail_url"`
	PostedDate     *time.Time `gorm:"type:date"                        json:"posted_date"`
	PostedBy       string     `gorm:"type:varchar(100)"                json:"posted_by"`
	OrgRegion      string     `gorm:"type:varchar(50)"                 json:"org_region"`
	Registration   string     `gorm:"type:varchar(100)"                json:"registration"`
	Category       string     `gorm:"type:varchar(50)"                 json:"category"`
	BidNo          string     `gorm:"type:varchar(50)"                 json:"bid_no"`
	Budget         int64      `gorm:"not null;default:0"               json:"budget"`
	Classification string     `gorm:"type:varchar(100)"                json:"classification"`
	ClosingAt      *time.Time `                                        json:"closing_at"`
	IsSelected     int        `gorm:"not null;default:0"               json:"is_selected"`
	ScrapedAt      time.Time  `gorm:"not null;autoCreateTime"          json:"scraped_at"`
}

// ScoredNotice 加权检索结果行
type ScoredNotice struct {
	Notice
	Score int `gorm:"column:score" json:"score"`
}

// NoticeStat 分组统计行
type NoticeStat struct {
	Label string `gorm:"column:label"`
	Count int64  `gorm:"column:count"`
}
