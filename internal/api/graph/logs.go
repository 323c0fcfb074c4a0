package graph

import (
	"context"

	"bidwatch/backend/internal/dto"
)

func (r *Resolver) LogsScraping(ctx context.Context, args struct{ Gap *int32 }) ([]*dto.ScrapingLog, error) {
	rows, err := r.svc.Log.Logs(ctx, intOr(args.Gap, 0))
	return list(r, "logsScraping", rows, err)
}

func (r *Resolver) ErrorsScraping(ctx context.Context, args struct{ Gap *int32 }) ([]*dto.ScrapingError, error) {
	rows, err := r.svc.Log.Errors(ctx, intOr(args.Gap, 0))
	return list(r, "errorsScraping", rows, err)
}
