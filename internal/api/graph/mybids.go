package graph

import (
	"context"

	"bidwatch/backend/internal/dto"
)

func (r *Resolver) MyBids(ctx context.Context, args struct{ Status *string }) ([]*dto.MyBid, error) {
	rows, err := r.svc.MyBid.List(ctx, str(args.Status))
	return list(r, "myBids", rows, err)
}

func (r *Resolver) MyBid(ctx context.Context, args struct {
	Nid    int32
	Source *string
}) (*dto.MyBid, error) {
	bid, err := r.svc.MyBid.Get(ctx, str(args.Source), args.Nid)
	return one(r, "myBid", bid, err)
}

func (r *Resolver) MyBidCreate(ctx context.Context, args struct {
	Nid    int32
	Source *string
}) (*dto.MyBid, error) {
	bid, err := r.svc.MyBid.Create(ctx, caller(ctx), str(args.Source), args.Nid)
	if err != nil {
		return nil, r.mutationFailed("myBidCreate", "Failed to create bid", err)
	}
	return bid, nil
}

func (r *Resolver) MyBidUpdate(ctx context.Context, args struct{ Input dto.MyBidInput }) (*dto.MyBid, error) {
	bid, err := r.svc.MyBid.Update(ctx, caller(ctx), &args.Input)
	if err != nil {
		return nil, r.mutationFailed("myBidUpdate", "Failed to update bid", err)
	}
	return bid, nil
}

func (r *Resolver) MyBidDelete(ctx context.Context, args struct {
	Nid    int32
	Source *string
}) (bool, error) {
	if err := r.svc.MyBid.Delete(ctx, caller(ctx), str(args.Source), args.Nid); err != nil {
		return false, r.mutationFailed("myBidDelete", "Failed to delete bid", err)
	}
	return true, nil
}
