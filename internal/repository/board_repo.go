package repository

import (
	"context"

	"gorm.io/gorm"

	"bidwatch/backend/internal/model"
	"bidwatch/backend/internal/search"
)

// ── 帖子 ──

// PostRepository 看板帖子数据访问接口
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id int) (*model.Post, error)
	// List 分页列出，公告置顶，其余按 id 倒序
	List(ctx context.Context, board string, offset, limit int) ([]model.Post, int64, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id int) error
}

type postRepo struct {
	db *gorm.DB
}

// NewPostRepo 创建 PostRepository 实例
func NewPostRepo(db *gorm.DB) PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepo) GetByID(ctx context.Context, id int) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) List(ctx context.Context, board string, offset, limit int) ([]model.Post, int64, error) {
	var (
		posts []model.Post
		total int64
	)
	db := r.db.WithContext(ctx).Model(&model.Post{}).Where("board = ?", board)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("is_notice DESC, id DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, total, err
}

func (r *postRepo) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete 评论通过外键级联删除
func (r *postRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{}).Error
}

// ── 评论 ──

// CommentRepository 帖子评论数据访问接口
type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	GetByID(ctx context.Context, id int) (*model.Comment, error)
	ListByPost(ctx context.Context, postID int) ([]model.Comment, error)
	Update(ctx context.Context, c *model.Comment) error
	Delete(ctx context.Context, id int) error
}

type commentRepo struct {
	db *gorm.DB
}

// NewCommentRepo 创建 CommentRepository 实例
func NewCommentRepo(db *gorm.DB) CommentRepository {
	return &commentRepo{db: db}
}

func (r *commentRepo) Create(ctx context.Context, c *model.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *commentRepo) GetByID(ctx context.Context, id int) (*model.Comment, error) {
	var c model.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepo) ListByPost(ctx context.Context, postID int) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepo) Update(ctx context.Context, c *model.Comment) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *commentRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Comment{}).Error
}

// ── 手册 ──

// ManualRepository 操作手册数据访问接口
type ManualRepository interface {
	Create(ctx context.Context, m *model.Manual) error
	GetByID(ctx context.Context, id int) (*model.Manual, error)
	List(ctx context.Context, category string) ([]model.Manual, error)
	Search(ctx context.Context, keyword string) ([]model.Manual, error)
	Update(ctx context.Context, m *model.Manual) error
	Delete(ctx context.Context, id int) error
}

type manualRepo struct {
	db *gorm.DB
}

// NewManualRepo 创建 ManualRepository 实例
func NewManualRepo(db *gorm.DB) ManualRepository {
	return &manualRepo{db: db}
}

func (r *manualRepo) Create(ctx context.Context, m *model.Manual) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *manualRepo) GetByID(ctx context.Context, id int) (*model.Manual, error) {
	var m model.Manual
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// List category 为空时返回全部
func (r *manualRepo) List(ctx context.Context, category string) ([]model.Manual, error) {
	var manuals []model.Manual
	db := r.db.WithContext(ctx)
	if category != "" {
		db = db.Where("category = ?", category)
	}
	err := db.Order("category ASC, id ASC").Find(&manuals).Error
	return manuals, err
}

// Search 标题或 Markdown 正文包含关键词
func (r *manualRepo) Search(ctx context.Context, keyword string) ([]model.Manual, error) {
	var manuals []model.Manual
	pattern := "%" + search.EscapeLike(keyword) + "%"
	err := r.db.WithContext(ctx).
		Where("title LIKE ? OR markdown LIKE ?", pattern, pattern).
		Order("id DESC").
		Find(&manuals).Error
	return manuals, err
}

func (r *manualRepo) Update(ctx context.Context, m *model.Manual) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *manualRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Manual{}).Error
}
