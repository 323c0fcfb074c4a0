package model

import (
	"time"

	"gorm.io/datatypes"
)

// MyBid 我的投标，对应 my_bids，(source, nid) 唯一
// detail / memo 为自由结构 JSON，形状随状态变化
type MyBid struct {
	Mid       int            `gorm:"primaryKey;autoIncrement"       json:"mid"`
	Nid       int            `gorm:"not null"                       json:"nid"`
	Source    string         `gorm:"type:varchar(10);not null"      json:"source"`
	Title     string         `gorm:"type:varchar(500)"              json:"title"`
	OrgName   string         `gorm:"type:varchar(100)"              json:"org_name"`
	DetailURL string         `gorm:"column:detail_url"              json:"detail_url"`
	Status    string         `gorm:"type:varchar(20);not null"      json:"status"`
	Detail    datatypes.JSON `gorm:"type:json"                      json:"detail"`
	Memo      datatypes.JSON `gorm:"type:json"                      json:"memo"`
	ClosingAt *time.Time     `                                      json:"closing_at"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime"        json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime"        json:"updated_at"`
}

// TableName 指定表名
func (MyBid) TableName() string { return "my_bids" }
