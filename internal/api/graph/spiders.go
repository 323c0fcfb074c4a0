package graph

import (
	"context"

	"bidwatch/backend/internal/dto"
)

// 爬虫检查结果是后端原样返回的 JSON，失败时为 null

func (r *Resolver) SpiderCheckFetchList(ctx context.Context, args struct{ OrgName string }) (*dto.JSON, error) {
	out, err := r.svc.Spider.CheckFetchList(ctx, args.OrgName)
	return one(r, "spiderCheckFetchList", out, err)
}

func (r *Resolver) SpiderCheckFetchDetail(ctx context.Context, args struct {
	OrgName string
	URL     string
}) (*dto.JSON, error) {
	out, err := r.svc.Spider.CheckFetchDetail(ctx, args.OrgName, args.URL)
	return one(r, "spiderCheckFetchDetail", out, err)
}

func (r *Resolver) SpiderScrapeList(ctx context.Context, args struct{ OrgNames []string }) (*dto.JSON, error) {
	out, err := r.svc.Spider.ScrapeList(ctx, caller(ctx), args.OrgNames)
	if err != nil {
		return nil, r.mutationFailed("spiderScrapeList", "Failed to start scraping", err)
	}
	return out, nil
}
