package model

import "time"

// ScrapingLog 爬取日志，对应 logs_notice_scraping
type ScrapingLog struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrgName       string    `gorm:"type:varchar(100)"        json:"org_name"`
	ErrorCode     *int      `                                json:"error_code"`
	ErrorMessage  *string   `gorm:"type:text"                json:"error_message"`
	ScrapedCount  int       `gorm:"not null;default:0"       json:"scraped_count"`
	InsertedCount int       `gorm:"not null;default:0"       json:"inserted_count"`
	Time          time.Time `gorm:"not null"                 json:"time"`
}

// TableName 指定表名
func (ScrapingLog) TableName() string { return "logs_notice_scraping" }

// ScrapingError 爬取失败汇总，对应 errors_notice_scraping
type ScrapingError struct {
	ID   int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Orgs string    `gorm:"type:text;not null"       json:"orgs"`
	Time time.Time `gorm:"not null"                 json:"time"`
}

// TableName 指定表名
func (ScrapingError) TableName() string { return "errors_notice_scraping" }
