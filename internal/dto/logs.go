package dto

// ScrapingLog 爬取日志响应
type ScrapingLog struct {
	ID            int32
	OrgName       string
	ErrorCode     *int32
	ErrorMessage  *string
	ScrapedCount  int32
	InsertedCount int32
	Time          string
}

// ScrapingError 爬取失败汇总响应
type ScrapingError struct {
	ID   int32
	Orgs string
	Time string
}
