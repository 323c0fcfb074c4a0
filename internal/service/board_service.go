package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"bidwatch/backend/internal/dto"
	"bidwatch/backend/internal/model"
	"bidwatch/backend/internal/repository"
)

// ── 看板模块业务错误 ──

var (
	ErrPostNotFound    = errors.New("帖子不存在")
	ErrCommentNotFound = errors.New("评论不存在")
	ErrContentRequired = errors.New("内容不能为空")
)

// 分页默认值
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// BoardService 看板帖子与评论业务接口
type BoardService interface {
	ListPosts(ctx context.Context, board string, page, pageSize int) (*dto.PostPage, error)
	GetPost(ctx context.Context, board string, id int32) (*dto.Post, error)
	CreatePost(ctx context.Context, caller *dto.Caller, in *dto.PostInput) (*dto.Post, error)
	UpdatePost(ctx context.Context, caller *dto.Caller, id int32, in *dto.PostInput) (*dto.Post, error)
	DeletePost(ctx context.Context, caller *dto.Caller, id int32) error

	ListComments(ctx context.Context, postID int32) ([]*dto.Comment, error)
	CreateComment(ctx context.Context, caller *dto.Caller, in *dto.CommentInput) (*dto.Comment, error)
	UpdateComment(ctx context.Context, caller *dto.Caller, id int32, content string) (*dto.Comment, error)
	DeleteComment(ctx context.Context, caller *dto.Caller, id int32) error
}

type boardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBoardService 创建 BoardService 实例
func NewBoardService(repo *repository.Repository, logger *zap.Logger) BoardService {
	return &boardService{repo: repo, logger: logger}
}

// ────────────────────── Posts ──────────────────────

func (s *boardService) ListPosts(ctx context.Context, board string, page, pageSize int) (*dto.PostPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	posts, total, err := s.repo.Post.List(ctx, board, (page-1)*pageSize, pageSize)
	if err != nil {
		s.logger.Error("列出帖子失败", zap.String("board", board), zap.Error(err))
		return nil, err
	}

	items := make([]*dto.Post, 0, len(posts))
	for i := range posts {
		items = append(items, toPostResponse(&posts[i]))
	}
	return &dto.PostPage{
		Items:    items,
		Total:    int32(total),
		Page:     int32(page),
		PageSize: int32(pageSize),
	}, nil
}

func (s *boardService) GetPost(ctx context.Context, board string, id int32) (*dto.Post, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if board != "" && post.Board != board {
		return nil, ErrPostNotFound
	}
	return toPostResponse(post), nil
}

func (s *boardService) CreatePost(ctx context.Context, caller *dto.Caller, in *dto.PostInput) (*dto.Post, error) {
	if !canWrite(caller) {
		return nil, ErrNoPermission
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}
	body, err := renderBody(in.PostBody(), model.FormatHTML)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Board:    in.Board,
		Title:    strings.TrimSpace(in.Title),
		Content:  body.Content,
		Markdown: body.Markdown,
		Format:   body.Format,
		Writer:   caller.Name,
		Email:    caller.Email,
		IsNotice: in.IsNotice != nil && *in.IsNotice && caller.HasRole(model.RoleAdmin, model.RoleManager),
	}
	if err := s.repo.Post.Create(ctx, post); err != nil {
		s.logger.Error("创建帖子失败", zap.String("board", in.Board), zap.Error(err))
		return nil, err
	}
	return toPostResponse(post), nil
}

func (s *boardService) UpdatePost(ctx context.Context, caller *dto.Caller, id int32, in *dto.PostInput) (*dto.Post, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(caller, post.Email) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}
	body, err := renderBody(in.PostBody(), post.Format)
	if err != nil {
		return nil, err
	}

	post.Title = strings.TrimSpace(in.Title)
	post.Content = body.Content
	post.Markdown = body.Markdown
	post.Format = body.Format
	if in.IsNotice != nil && caller.HasRole(model.RoleAdmin, model.RoleManager) {
		post.IsNotice = *in.IsNotice
	}

	if err := s.repo.Post.Update(ctx, post); err != nil {
		s.logger.Error("更新帖子失败", zap.Int32("id", id), zap.Error(err))
		return nil, err
	}
	return toPostResponse(post), nil
}

func (s *boardService) DeletePost(ctx context.Context, caller *dto.Caller, id int32) error {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(caller, post.Email) {
		return ErrForbidden
	}
	if err := s.repo.Post.Delete(ctx, post.ID); err != nil {
		s.logger.Error("删除帖子失败", zap.Int32("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *boardService) findPost(ctx context.Context, id int32) (*model.Post, error) {
	post, err := s.repo.Post.GetByID(ctx, int(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Error("查询帖子失败", zap.Int32("id", id), zap.Error(err))
		return nil, err
	}
	return post, nil
}

// ────────────────────── Comments ──────────────────────

func (s *boardService) ListComments(ctx context.Context, postID int32) ([]*dto.Comment, error) {
	comments, err := s.repo.Comment.ListByPost(ctx, int(postID))
	if err != nil {
		s.logger.Error("列出评论失败", zap.Int32("post_id", postID), zap.Error(err))
		return nil, err
	}
	result := make([]*dto.Comment, 0, len(comments))
	for i := range comments {
		result = append(result, toCommentResponse(&comments[i]))
	}
	return result, nil
}

func (s *boardService) CreateComment(ctx context.Context, caller *dto.Caller, in *dto.CommentInput) (*dto.Comment, error) {
	if !canWrite(caller) {
		return nil, ErrNoPermission
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, ErrContentRequired
	}
	if _, err := s.findPost(ctx, in.PostID); err != nil {
		return nil, err
	}

	c := &model.Comment{
		PostID:  int(in.PostID),
		Content: content,
		Writer:  caller.Name,
		Email:   caller.Email,
	}
	if err := s.repo.Comment.Create(ctx, c); err != nil {
		s.logger.Error("创建评论失败", zap.Int32("post_id", in.PostID), zap.Error(err))
		return nil, err
	}
	return toCommentResponse(c), nil
}

func (s *boardService) UpdateComment(ctx context.Context, caller *dto.Caller, id int32, content string) (*dto.Comment, error) {
	c, err := s.findComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(caller, c.Email) {
		return nil, ErrForbidden
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}

	c.Content = content
	if err := s.repo.Comment.Update(ctx, c); err != nil {
		s.logger.Error("更新评论失败", zap.Int32("id", id), zap.Error(err))
		return nil, err
	}
	return toCommentResponse(c), nil
}

func (s *boardService) DeleteComment(ctx context.Context, caller *dto.Caller, id int32) error {
	c, err := s.findComment(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(caller, c.Email) {
		return ErrForbidden
	}
	if err := s.repo.Comment.Delete(ctx, c.ID); err != nil {
		s.logger.Error("删除评论失败", zap.Int32("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *boardService) findComment(ctx context.Context, id int32) (*model.Comment, error) {
	c, err := s.repo.Comment.GetByID(ctx, int(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		s.logger.Error("查询评论失败", zap.Int32("id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

// ── 内部辅助 ──

func toPostResponse(p *model.Post) *dto.Post {
	return &dto.Post{
		ID:        int32(p.ID),
		Board:     p.Board,
		Title:     p.Title,
		Content:   p.Content,
		Markdown:  p.Markdown,
		Format:    p.Format,
		Writer:    p.Writer,
		Email:     p.Email,
		IsNotice:  p.IsNotice,
		CreatedAt: formatTime(p.CreatedAt),
		UpdatedAt: formatTime(p.UpdatedAt),
	}
}

func toCommentResponse(c *model.Comment) *dto.Comment {
	return &dto.Comment{
		ID:        int32(c.ID),
		PostID:    int32(c.PostID),
		Content:   c.Content,
		Writer:    c.Writer,
		Email:     c.Email,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}
