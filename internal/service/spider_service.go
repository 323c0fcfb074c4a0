package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"bidwatch/backend/internal/backend"
	"bidwatch/backend/internal/dto"
	"bidwatch/backend/pkg/casemap"
)

// ErrOrgNamesRequired 未指定要爬取的机关
var ErrOrgNamesRequired = errors.New("至少指定一个机关")

// SpiderService 爬虫调试与触发业务接口；响应键统一转为 camelCase
type SpiderService interface {
	CheckFetchList(ctx context.Context, orgName string) (*dto.JSON, error)
	CheckFetchDetail(ctx context.Context, orgName, url string) (*dto.JSON, error)
	ScrapeList(ctx context.Context, caller *dto.Caller, orgNames []string) (*dto.JSON, error)
}

type spiderService struct {
	api    backend.Client
	logger *zap.Logger
}

// NewSpiderService 创建 SpiderService 实例
func NewSpiderService(api backend.Client, logger *zap.Logger) SpiderService {
	return &spiderService{api: api, logger: logger}
}

func (s *spiderService) CheckFetchList(ctx context.Context, orgName string) (*dto.JSON, error) {
	if strings.TrimSpace(orgName) == "" {
		return nil, ErrOrgNameRequired
	}
	return s.call(ctx, "/check_fetch_list", map[string]interface{}{"org_name": orgName})
}

func (s *spiderService) CheckFetchDetail(ctx context.Context, orgName, url string) (*dto.JSON, error) {
	if strings.TrimSpace(orgName) == "" {
		return nil, ErrOrgNameRequired
	}
	return s.call(ctx, "/check_fetch_detail", map[string]interface{}{"org_name": orgName, "url": url})
}

func (s *spiderService) ScrapeList(ctx context.Context, caller *dto.Caller, orgNames []string) (*dto.JSON, error) {
	if !canWrite(caller) {
		return nil, ErrNoPermission
	}
	names := make([]string, 0, len(orgNames))
	for _, n := range orgNames {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil, ErrOrgNamesRequired
	}
	return s.call(ctx, "/scrape_list", map[string]interface{}{"org_names": names})
}

func (s *spiderService) call(ctx context.Context, path string, body map[string]interface{}) (*dto.JSON, error) {
	var out interface{}
	if err := s.api.Post(ctx, path, body, &out); err != nil {
		s.logger.Error("调用爬虫接口失败", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	return dto.NewJSON(casemap.ToCamelKeys(out)), nil
}
