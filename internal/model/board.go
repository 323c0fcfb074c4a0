package model

import "time"

// 内容格式
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Post 看板帖子，对应 board_posts
type Post struct {
	ID        int       `gorm:"primaryKey;autoIncrement"     json:"id"`
	Board     string    `gorm:"type:varchar(30);not null"    json:"board"`
	Title     string    `gorm:"type:varchar(300);not null"   json:"title"`
	Content   string    `gorm:"type:mediumtext;not null"     json:"content"`
	Markdown  string    `gorm:"type:mediumtext;not null"     json:"markdown"`
	Format    string    `gorm:"type:varchar(10);not null"    json:"format"`
	Writer    string    `gorm:"type:varchar(50)"             json:"writer"`
	Email     string    `gorm:"type:varchar(100)"            json:"email"`
	IsNotice  bool      `gorm:"not null;default:false"       json:"is_notice"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"      json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"      json:"updated_at"`
}

// TableName 指定表名
func (Post) TableName() string { return "board_posts" }

// Comment 帖子评论，对应 board_comments
type Comment struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    int       `gorm:"not null;index"           json:"post_id"`
	Content   string    `gorm:"type:text;not null"       json:"content"`
	Writer    string    `gorm:"type:varchar(50)"         json:"writer"`
	Email     string    `gorm:"type:varchar(100)"        json:"email"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"  json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"  json:"updated_at"`
}

// TableName 指定表名
func (Comment) TableName() string { return "board_comments" }

// Manual 操作手册，对应 manuals
type Manual struct {
	ID        int       `gorm:"primaryKey;autoIncrement"     json:"id"`
	Category  string    `gorm:"type:varchar(50)"             json:"category"`
	Title     string    `gorm:"type:varchar(300);not null"   json:"title"`
	Content   string    `gorm:"type:mediumtext;not null"     json:"content"`
	Markdown  string    `gorm:"type:mediumtext;not null"     json:"markdown"`
	Format    string    `gorm:"type:varchar(10);not null"    json:"format"`
	Writer    string    `gorm:"type:varchar(50)"             json:"writer"`
	Email     string    `gorm:"type:varchar(100)"            json:"email"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"      json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"      json:"updated_at"`
}

// TableName 指定表名
func (Manual) TableName() string { return "manuals" }
