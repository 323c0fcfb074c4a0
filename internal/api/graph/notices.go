package graph

import (
	"context"

	"bidwatch/backend/internal/dto"
)

// ────────────────────── Query ──────────────────────

func (r *Resolver) Notices(ctx context.Context, args struct {
	Source   *string
	Category *string
	Gap      *int32
}) ([]*dto.Notice, error) {
	rows, err := r.svc.Notice.List(ctx, &dto.NoticeListRequest{
		Source:   str(args.Source),
		Category: str(args.Category),
		Gap:      intOr(args.Gap, 0),
	})
	return list(r, "notices", rows, err)
}

func (r *Resolver) NoticesSearch(ctx context.Context, args struct {
	Keywords string
	Nots     *string
	MinPoint *int32
	AddWhere *string
	Source   *string
	Gap      *int32
}) ([]*dto.Notice, error) {
	rows, err := r.svc.Notice.Search(ctx, &dto.NoticeSearchRequest{
		Keywords: args.Keywords,
		Nots:     str(args.Nots),
		MinPoint: intOr(args.MinPoint, 0),
		AddWhere: str(args.AddWhere),
		Source:   str(args.Source),
		Gap:      intOr(args.Gap, 0),
	})
	return list(r, "noticesSearch", rows, err)
}

func (r *Resolver) NoticesStatistics(ctx context.Context, args struct {
	Source *string
	Gap    *int32
	Unit   *string
}) ([]*dto.NoticeStat, error) {
	rows, err := r.svc.Notice.Statistics(ctx, str(args.Source), intOr(args.Gap, 0), str(args.Unit))
	return list(r, "noticesStatistics", rows, err)
}

// ────────────────────── Mutation ──────────────────────

func (r *Resolver) NoticeExclude(ctx context.Context, args struct {
	Source *string
	Nids   []int32
}) (int32, error) {
	n, err := r.svc.Notice.Exclude(ctx, caller(ctx), str(args.Source), args.Nids)
	if err != nil {
		return 0, r.mutationFailed("noticeExclude", "Failed to exclude notices", err)
	}
	return n, nil
}

func (r *Resolver) NoticeRestore(ctx context.Context, args struct {
	Source *string
	Nids   []int32
}) (int32, error) {
	n, err := r.svc.Notice.Restore(ctx, caller(ctx), str(args.Source), args.Nids)
	if err != nil {
		return 0, r.mutationFailed("noticeRestore", "Failed to restore notices", err)
	}
	return n, nil
}

func (r *Resolver) NoticeUpdateCategory(ctx context.Context, args struct {
	Source   *string
	Nids     []int32
	Category string
}) (int32, error) {
	n, err := r.svc.Notice.UpdateCategory(ctx, caller(ctx), str(args.Source), args.Nids, args.Category)
	if err != nil {
		return 0, r.mutationFailed("noticeUpdateCategory", "Failed to update notice category", err)
	}
	return n, nil
}
