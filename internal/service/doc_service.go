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

// ErrManualNotFound 手册不存在
var ErrManualNotFound = errors.New("手册不存在")

// DocService 操作手册业务接口
type DocService interface {
	List(ctx context.Context, category string) ([]*dto.Manual, error)
	Get(ctx context.Context, id int32) (*dto.Manual, error)
	Search(ctx context.Context, keyword string) ([]*dto.Manual, error)
	Create(ctx context.Context, caller *dto.Caller, in *dto.ManualInput) (*dto.Manual, error)
	Update(ctx context.Context, caller *dto.Caller, id int32, in *dto.ManualInput) (*dto.Manual, error)
	Delete(ctx context.Context, caller *dto.Caller, id int32) error
}

type docService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDocService 创建 DocService 实例
func NewDocService(repo *repository.Repository, logger *zap.Logger) DocService {
	return &docService{repo: repo, logger: logger}
}

func (s *docService) List(ctx context.Context, category string) ([]*dto.Manual, error) {
	manuals, err := s.repo.Manual.List(ctx, category)
	if err != nil {
		s.logger.Error("列出手册失败", zap.String("category", category), zap.Error(err))
		return nil, err
	}
	return toManualResponses(manuals), nil
}

func (s *docService) Get(ctx context.Context, id int32) (*dto.Manual, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toManualResponse(m), nil
}

func (s *docService) Search(ctx context.Context, keyword string) ([]*dto.Manual, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []*dto.Manual{}, nil
	}
	manuals, err := s.repo.Manual.Search(ctx, keyword)
	if err != nil {
		s.logger.Error("检索手册失败", zap.String("keyword", keyword), zap.Error(err))
		return nil, err
	}
	return toManualResponses(manuals), nil
}

func (s *docService) Create(ctx context.Context, caller *dto.Caller, in *dto.ManualInput) (*dto.Manual, error) {
	if !caller.HasRole(model.RoleAdmin, model.RoleManager) {
		return nil, ErrNoPermission
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}
	body, err := renderBody(in.ManualBody(), model.FormatMarkdown)
	if err != nil {
		return nil, err
	}

	m := &model.Manual{
		Title:    strings.TrimSpace(in.Title),
		Content:  body.Content,
		Markdown: body.Markdown,
		Format:   body.Format,
		Writer:   caller.Name,
		Email:    caller.Email,
	}
	if in.Category != nil {
		m.Category = strings.TrimSpace(*in.Category)
	}
	if err := s.repo.Manual.Create(ctx, m); err != nil {
		s.logger.Error("创建手册失败", zap.Error(err))
		return nil, err
	}
	return toManualResponse(m), nil
}

func (s *docService) Update(ctx context.Context, caller *dto.Caller, id int32, in *dto.ManualInput) (*dto.Manual, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(caller, m.Email) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}
	body, err := renderBody(in.ManualBody(), m.Format)
	if err != nil {
		return nil, err
	}

	m.Title = strings.TrimSpace(in.Title)
	m.Content = body.Content
	m.Markdown = body.Markdown
	m.Format = body.Format
	if in.Category != nil {
		m.Category = strings.TrimSpace(*in.Category)
	}
	if err := s.repo.Manual.Update(ctx, m); err != nil {
		s.logger.Error("更新手册失败", zap.Int32("id", id), zap.Error(err))
		return nil, err
	}
	return toManualResponse(m), nil
}

func (s *docService) Delete(ctx context.Context, caller *dto.Caller, id int32) error {
	m, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(caller, m.Email) {
		return ErrForbidden
	}
	if err := s.repo.Manual.Delete(ctx, m.ID); err != nil {
		s.logger.Error("删除手册失败", zap.Int32("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *docService) find(ctx context.Context, id int32) (*model.Manual, error) {
	m, err := s.repo.Manual.GetByID(ctx, int(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrManualNotFound
		}
		s.logger.Error("查询手册失败", zap.Int32("id", id), zap.Error(err))
		return nil, err
	}
	return m, nil
}

func toManualResponse(m *model.Manual) *dto.Manual {
	return &dto.Manual{
		ID:        int32(m.ID),
		Category:  m.Category,
		Title:     m.Title,
		Content:   m.Content,
		Markdown:  m.Markdown,
		Format:    m.Format,
		Writer:    m.Writer,
		Email:     m.Email,
		CreatedAt: formatTime(m.CreatedAt),
		UpdatedAt: formatTime(m.UpdatedAt),
	}
}

func toManualResponses(manuals []model.Manual) []*dto.Manual {
	result := make([]*dto.Manual, 0, len(manuals))
	for i := range manuals {
		result = append(result, toManualResponse(&manuals[i]))
	}
	return result
}
