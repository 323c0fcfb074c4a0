package dto

// ── 看板 / 手册 DTO ──

// Post 帖子响应
type Post struct {
	ID        int32
	Board     string
	Title     string
	Content   string
	Markdown  string
	Format    string
	Writer    string
	Email     string
	IsNotice  bool
	CreatedAt string
	UpdatedAt string
}

// PostPage 帖子分页
type PostPage struct {
	Items    []*Post
	Total    int32
	Page     int32
	PageSize int32
}

// PostInput 帖子写入请求
type PostInput struct {
	Board    string
	Title    string
	Content  *string
	Markdown *string
	Format   *string
	IsNotice *bool
}

// Comment 评论响应
type Comment struct {
	ID        int32
	PostID    int32
	Content   string
	Writer    string
	Email     string
	CreatedAt string
	UpdatedAt string
}

// CommentInput 评论写入请求
type CommentInput struct {
	PostID  int32
	Content string
}

// Manual 手册响应
type Manual struct {
	ID        int32
	Category  string
	Title     string
	Content   string
	Markdown  string
	Format    string
	Writer    string
	Email     string
	CreatedAt string
	UpdatedAt string
}

// ManualInput 手册写入请求
type ManualInput struct {
	Category *string
	Title    string
	Content  *string
	Markdown *string
	Format   *string
}

// Body 帖子/手册正文的统一视图
type Body struct {
	Content  string
	Markdown string
	Format   string
}

// PostBody 提取帖子正文
func (in *PostInput) PostBody() Body {
	return Body{Content: str(in.Content), Markdown: str(in.Markdown), Format: str(in.Format)}
}

// ManualBody 提取手册正文
func (in *ManualInput) ManualBody() Body {
	return Body{Content: str(in.Content), Markdown: str(in.Markdown), Format: str(in.Format)}
}
