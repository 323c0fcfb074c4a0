package dto

// ── 我的投标 DTO ──

// MyBid 我的投标响应
type MyBid struct {
	Mid       int32
	Nid       int32
	Source    string
	Title     string
	OrgName   string
	DetailURL string
	Status    string
	Detail    *JSON
	Memo      *JSON
	ClosingAt string
	CreatedAt string
	UpdatedAt string
}

// MyBidInput 我的投标更新请求；未提供的字段保持不变
type MyBidInput struct {
	Nid       int32
	Source    *string
	Status    *string
	Detail    *JSON
	Memo      *JSON
	ClosingAt *string
}
